package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	domaininv "github.com/pentasoft/pims-api/internal/domain/inventory"
	"github.com/pentasoft/pims-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportUseCase arma los reportes de solo lectura sobre el libro de
// movimientos. Todas las cifras se derivan, nunca se leen de un acumulado.
type ReportUseCase struct {
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	users        repository.UserRepository
	pdf          StockReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	products repository.ProductRepository,
	transactions repository.TransactionRepository,
	users repository.UserRepository,
	pdf StockReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{products: products, transactions: transactions, users: users, pdf: pdf}
}

// StockReport devuelve una fila por producto con entradas, salidas y stock
// actual. TotalIn incluye el saldo inicial para que la resta cierre a simple
// vista: CurrentStock = TotalIn - TotalOut.
func (uc *ReportUseCase) StockReport(ctx context.Context) ([]dto.StockReportRow, error) {
	products, err := uc.products.List(0, 0)
	if err != nil {
		return nil, err
	}
	names := newUserNameCache(uc.users)
	rows := make([]dto.StockReportRow, 0, len(products))
	for _, p := range products {
		sumIn, err := uc.transactions.SumByKind(p.ID, entity.TransactionIN)
		if err != nil {
			return nil, err
		}
		sumOut, err := uc.transactions.SumByKind(p.ID, entity.TransactionOUT)
		if err != nil {
			return nil, err
		}
		rows = append(rows, dto.StockReportRow{
			ProductID:      p.ID,
			ProductName:    p.Name,
			InitialBalance: p.InitialBalance,
			TotalIn:        p.InitialBalance + sumIn,
			TotalOut:       sumOut,
			CurrentStock:   domaininv.CurrentStock(p.InitialBalance, sumIn, sumOut),
			CreatedBy:      names.ref(p.CreatedBy),
		})
	}
	return rows, nil
}

// ProductStock devuelve el historial cronológico de un producto con el saldo
// resultante tras cada entrada del libro.
func (uc *ReportUseCase) ProductStock(ctx context.Context, productID string) (*dto.ProductStockReport, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	history, err := uc.transactions.ListByProductAsc(productID)
	if err != nil {
		return nil, err
	}
	names := newUserNameCache(uc.users)

	balance := product.InitialBalance
	rows := make([]dto.StockHistoryRow, 0, len(history))
	for _, t := range history {
		balance = domaininv.Apply(balance, t.Kind, t.Quantity)
		row := dto.StockHistoryRow{
			ID:              t.ID,
			Kind:            t.Kind,
			Quantity:        t.Quantity,
			UnitPrice:       t.UnitPrice,
			VendorName:      t.VendorName,
			Remarks:         t.Remarks,
			TransactionDate: t.TransactionDate,
			CreatedBy:       dto.UserRef{ID: t.CreatedBy, Name: t.CreatedByName},
			StockAfter:      balance,
		}
		if t.RecipientUserID != "" {
			row.RecipientUser = &dto.UserRef{ID: t.RecipientUserID, Name: t.RecipientName}
		}
		rows = append(rows, row)
	}
	return &dto.ProductStockReport{
		Product: dto.StockReportProduct{
			ID:             product.ID,
			Name:           product.Name,
			InitialBalance: product.InitialBalance,
			CreatedBy:      names.ref(product.CreatedBy),
		},
		CurrentStock: balance,
		History:      rows,
	}, nil
}

// PriceHistory devuelve las compras (IN e INITIAL) con precio unitario,
// más recientes primero. productID vacío incluye todos los productos.
func (uc *ReportUseCase) PriceHistory(ctx context.Context, productID string) ([]dto.PriceHistoryRow, error) {
	priced, err := uc.transactions.ListPriced(productID)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.PriceHistoryRow, 0, len(priced))
	for _, t := range priced {
		if t.UnitPrice == nil {
			continue
		}
		unit := *t.UnitPrice
		rows = append(rows, dto.PriceHistoryRow{
			ID:              t.ID,
			ProductID:       t.ProductID,
			ProductName:     t.ProductName,
			Kind:            t.Kind,
			Quantity:        t.Quantity,
			UnitPrice:       unit,
			TotalPrice:      unit.Mul(decimal.NewFromInt(t.Quantity)),
			VendorName:      t.VendorName,
			TransactionDate: t.TransactionDate,
			CreatedBy:       dto.UserRef{ID: t.CreatedBy, Name: t.CreatedByName},
		})
	}
	return rows, nil
}

// ProductToPerson agrupa las salidas por (producto, receptor), en el orden de
// primera aparición, con la cantidad total entregada y el detalle de cada
// movimiento. Ambos filtros son opcionales.
func (uc *ReportUseCase) ProductToPerson(ctx context.Context, productID, recipientUserID string) ([]dto.ProductToPersonGroup, error) {
	outs, err := uc.transactions.ListOut(productID, recipientUserID)
	if err != nil {
		return nil, err
	}
	type key struct{ productID, recipientID string }
	index := make(map[key]int)
	groups := make([]dto.ProductToPersonGroup, 0)
	for _, t := range outs {
		k := key{t.ProductID, t.RecipientUserID}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, dto.ProductToPersonGroup{
				ProductID:       t.ProductID,
				ProductName:     t.ProductName,
				RecipientUserID: t.RecipientUserID,
				RecipientName:   t.RecipientName,
			})
		}
		groups[i].TotalQuantity += t.Quantity
		groups[i].Transactions = append(groups[i].Transactions, dto.ProductToPersonItem{
			ID:              t.ID,
			Quantity:        t.Quantity,
			Remarks:         t.Remarks,
			TransactionDate: t.TransactionDate,
			CreatedBy:       dto.UserRef{ID: t.CreatedBy, Name: t.CreatedByName},
		})
	}
	return groups, nil
}

// StockReportPDF genera el reporte de stock como PDF y devuelve bytes y
// nombre de archivo sugerido.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	rows, err := uc.StockReport(ctx)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	pdfBytes, err = uc.pdf.GenerateStockReportPDF(ctx, rows, now)
	if err != nil {
		return nil, "", err
	}
	filename = fmt.Sprintf("reporte-stock-%s.pdf", now.Format("20060102"))
	return pdfBytes, filename, nil
}

// userNameCache evita resolver el mismo usuario más de una vez por reporte.
type userNameCache struct {
	repo  repository.UserRepository
	cache map[string]dto.UserRef
}

func newUserNameCache(repo repository.UserRepository) *userNameCache {
	return &userNameCache{repo: repo, cache: make(map[string]dto.UserRef)}
}

func (c *userNameCache) ref(userID string) dto.UserRef {
	if userID == "" {
		return dto.UserRef{}
	}
	if r, ok := c.cache[userID]; ok {
		return r
	}
	r := dto.UserRef{ID: userID}
	if u, err := c.repo.GetByID(userID); err == nil && u != nil {
		r.Name = u.Name
	}
	c.cache[userID] = r
	return r
}
