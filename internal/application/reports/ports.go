package reports

import (
	"context"
	"time"

	"github.com/pentasoft/pims-api/internal/application/dto"
)

// StockReportPDFGenerator es el puerto de infraestructura que renderiza el
// reporte de stock como documento PDF.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, rows []dto.StockReportRow, generatedAt time.Time) ([]byte, error)
}
