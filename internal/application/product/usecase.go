package product

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	domaininv "github.com/pentasoft/pims-api/internal/domain/inventory"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// ProductUseCase gestiona productos. La creación escribe el producto y su
// entrada INITIAL en la misma transacción (invariante: exactamente un
// INITIAL por producto, creado atómicamente con él).
type ProductUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	txRepo   repository.TransactionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner TxRunner, products repository.ProductRepository, txRepo repository.TransactionRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, products: products, txRepo: txRepo}
}

// Create crea el producto y su entrada INITIAL de forma atómica.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actingUserID string) (*dto.ProductResponse, error) {
	if in.Name == "" || in.InitialBalance < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		InitialBalance: in.InitialBalance,
		VendorName:     in.VendorName,
		CreatedBy:      actingUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	initial := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		Kind:            entity.TransactionINITIAL,
		Quantity:        in.InitialBalance,
		UnitPrice:       in.UnitPrice,
		VendorName:      in.VendorName,
		Remarks:         "Initial stock",
		CreatedBy:       actingUserID,
		TransactionDate: now,
	}
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return txRepo.Create(initial)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, in.InitialBalance), nil
}

// Get devuelve un producto con su stock derivado.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	stock, err := uc.stockOf(product)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// List devuelve los productos (más recientes primero) con su stock derivado.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		stock, err := uc.stockOf(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *toProductResponse(p, stock))
	}
	return out, nil
}

// Rename actualiza el nombre; todo lo demás es inmutable tras la creación.
func (uc *ProductUseCase) Rename(ctx context.Context, id, name string) (*dto.ProductResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	product.Name = name
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	stock, err := uc.stockOf(product)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// Delete elimina el producto solo si no tiene movimientos más allá del
// INITIAL; el INITIAL se borra en cascada dentro de la misma transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		count, err := txRepo.CountByProduct(id)
		if err != nil {
			return err
		}
		if count > 1 {
			return fmt.Errorf("%w: el producto tiene movimientos registrados", domain.ErrConflict)
		}
		if err := txRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

func (uc *ProductUseCase) stockOf(p *entity.Product) (int64, error) {
	sumIn, err := uc.txRepo.SumByKind(p.ID, entity.TransactionIN)
	if err != nil {
		return 0, err
	}
	sumOut, err := uc.txRepo.SumByKind(p.ID, entity.TransactionOUT)
	if err != nil {
		return 0, err
	}
	return domaininv.CurrentStock(p.InitialBalance, sumIn, sumOut), nil
}

func toProductResponse(p *entity.Product, stock int64) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		InitialBalance: p.InitialBalance,
		VendorName:     p.VendorName,
		CurrentStock:   stock,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
