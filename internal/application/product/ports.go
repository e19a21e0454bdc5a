package product

import (
	"context"

	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. El producto y su entrada
// INITIAL se crean (o se borran en cascada) como una unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
