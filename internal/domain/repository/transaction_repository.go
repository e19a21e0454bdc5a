package repository

import "github.com/pentasoft/pims-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia del libro de
// movimientos (append-only). No expone Update ni Delete individual;
// DeleteByProduct existe solo para la cascada del borrado de producto.
type TransactionRepository interface {
	Create(transaction *entity.InventoryTransaction) error
	// SumByKind suma las cantidades de un tipo de movimiento para un producto
	// (COALESCE a 0 si no hay filas).
	SumByKind(productID, kind string) (int64, error)
	CountByProduct(productID string) (int64, error)
	DeleteByProduct(productID string) error

	// Listados con referencias resueltas, más recientes primero.
	List(limit, offset int) ([]*entity.TransactionDetail, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.TransactionDetail, error)
	ListByRecipient(recipientUserID string, limit, offset int) ([]*entity.TransactionDetail, error)

	// Proyecciones para reportes.
	ListByProductAsc(productID string) ([]*entity.TransactionDetail, error)
	ListPriced(productID string) ([]*entity.TransactionDetail, error)
	ListOut(productID, recipientUserID string) ([]*entity.TransactionDetail, error)
}
