package assets

import (
	"context"

	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a
// ella. Lo usan la creación de activos (activo + valores de campos) y las
// transiciones del ciclo de asignación (fila de historial + estado).
type TxRunner interface {
	RunAssets(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		assignmentRepo repository.AssignmentRepository,
	) error) error
}
