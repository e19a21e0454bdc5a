package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pentasoft/pims-api/internal/application/reports"
)

// ReportHandler maneja los reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockReport godoc
// @Summary      Reporte de stock por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockReportRow
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// StockReportPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) StockReportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.StockReportPDF(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ProductStock godoc
// @Summary      Historial de un producto con saldo corriente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/{productId} [get]
func (h *ReportHandler) ProductStock(c *fiber.Ctx) error {
	out, err := h.uc.ProductStock(c.Context(), c.Params("productId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PriceHistory godoc
// @Summary      Historial de precios de compra (IN e INITIAL)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.PriceHistoryRow
// @Router       /api/reports/price-history [get]
func (h *ReportHandler) PriceHistory(c *fiber.Ctx) error {
	out, err := h.uc.PriceHistory(c.Context(), c.Query("productId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ProductToPerson godoc
// @Summary      Salidas agrupadas por producto y receptor
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        productId        query  string  false  "Filtrar por producto"
// @Param        recipientUserId  query  string  false  "Filtrar por receptor"
// @Success      200  {array}  dto.ProductToPersonGroup
// @Router       /api/reports/product-to-person [get]
func (h *ReportHandler) ProductToPerson(c *fiber.Ctx) error {
	out, err := h.uc.ProductToPerson(c.Context(), c.Query("productId"), c.Query("recipientUserId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
