package inventory

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

// LedgerUseCase opera el libro de movimientos: entradas (IN), salidas (OUT)
// y el stock derivado. Las salidas corren en transacción con bloqueo de fila
// (SELECT FOR UPDATE sobre el producto) para que la verificación de stock y
// el append sean una sola operación lógica.
type LedgerUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewLedgerUseCase construye el caso de uso del libro.
func NewLedgerUseCase(
	txRunner TxRunner,
	txRepo repository.TransactionRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, txRepo: txRepo, products: products, users: users}
}

// RegisterIn registra una entrada (IN). El producto debe existir; no hay
// cota superior de cantidad.
func (uc *LedgerUseCase) RegisterIn(ctx context.Context, in dto.CreateInRequest, actingUserID string) (*dto.TransactionResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	unitPrice := in.UnitPrice
	tx := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		Kind:            entity.TransactionIN,
		Quantity:        in.Quantity,
		UnitPrice:       &unitPrice,
		VendorName:      in.VendorName,
		Remarks:         in.Remarks,
		CreatedBy:       actingUserID,
		TransactionDate: time.Now(),
	}
	if err := uc.txRepo.Create(tx); err != nil {
		return nil, err
	}
	return toTransactionResponse(&entity.TransactionDetail{InventoryTransaction: *tx, ProductName: product.Name}), nil
}

// RegisterOut registra una salida (OUT) hacia un usuario receptor.
// Dentro de una sola transacción: bloquea la fila del producto, recalcula el
// stock desde el libro y falla con ErrInsufficientStock si no alcanza.
// Dos salidas concurrentes sobre el mismo producto se serializan en el lock.
func (uc *LedgerUseCase) RegisterOut(ctx context.Context, in dto.CreateOutRequest, actingUserID string) (*dto.TransactionResponse, error) {
	if in.ProductID == "" || in.RecipientUserID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	recipient, err := uc.users.GetByID(in.RecipientUserID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, fmt.Errorf("%w: receptor %s", domain.ErrUserNotFound, in.RecipientUserID)
	}

	tx := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		Kind:            entity.TransactionOUT,
		Quantity:        in.Quantity,
		RecipientUserID: in.RecipientUserID,
		Remarks:         in.Remarks,
		CreatedBy:       actingUserID,
		TransactionDate: time.Now(),
	}
	var productName string
	err = uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		// Bloquea la fila del producto: cierra la carrera check-then-act
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		productName = product.Name

		stock, err := currentStock(txRepo, product)
		if err != nil {
			return err
		}
		if !domaininv.CanWithdraw(stock, in.Quantity) {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, stock, in.Quantity)
		}
		return txRepo.Create(tx)
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(&entity.TransactionDetail{
		InventoryTransaction: *tx,
		ProductName:          productName,
		RecipientName:        recipient.Name,
	}), nil
}

// CurrentStock deriva el stock actual de un producto.
func (uc *LedgerUseCase) CurrentStock(ctx context.Context, productID string) (int64, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return currentStock(uc.txRepo, product)
}

// List lista todas las entradas del libro, más recientes primero.
func (uc *LedgerUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	page.DefaultPage()
	list, err := uc.txRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

// ListByProduct lista los movimientos de un producto.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	page.DefaultPage()
	list, err := uc.txRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

// ListByRecipient lista las salidas recibidas por un usuario.
func (uc *LedgerUseCase) ListByRecipient(ctx context.Context, recipientUserID string, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	user, err := uc.users.GetByID(recipientUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, recipientUserID)
	}
	page.DefaultPage()
	list, err := uc.txRepo.ListByRecipient(recipientUserID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

// currentStock lee las sumas del libro y aplica la aritmética de dominio.
func currentStock(txRepo repository.TransactionRepository, product *entity.Product) (int64, error) {
	sumIn, err := txRepo.SumByKind(product.ID, entity.TransactionIN)
	if err != nil {
		return 0, err
	}
	sumOut, err := txRepo.SumByKind(product.ID, entity.TransactionOUT)
	if err != nil {
		return 0, err
	}
	return domaininv.CurrentStock(product.InitialBalance, sumIn, sumOut), nil
}

func toTransactionResponse(t *entity.TransactionDetail) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		ProductName:     t.ProductName,
		Kind:            t.Kind,
		Quantity:        t.Quantity,
		UnitPrice:       t.UnitPrice,
		VendorName:      t.VendorName,
		RecipientUserID: t.RecipientUserID,
		RecipientName:   t.RecipientName,
		Remarks:         t.Remarks,
		CreatedBy:       t.CreatedBy,
		CreatedByName:   t.CreatedByName,
		TransactionDate: t.TransactionDate,
	}
}

func toTransactionResponses(list []*entity.TransactionDetail) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTransactionResponse(t))
	}
	return out
}
