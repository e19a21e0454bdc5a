package repository

import (
	"time"

	"github.com/pentasoft/pims-api/internal/domain/entity"
)

// AssignmentRepository define el puerto de persistencia del historial de
// asignaciones (append-only). La fila activa es la de HandoverDate NULL;
// Close la cierra, nunca se borra.
type AssignmentRepository interface {
	Create(assignment *entity.AssetAssignment) error
	// GetActiveByAsset devuelve la asignación activa o nil si no existe.
	GetActiveByAsset(assetID string) (*entity.AssetAssignment, error)
	// Close fija handoverDate en la asignación; si remarks no es vacío,
	// reemplaza las observaciones.
	Close(id string, handoverDate time.Time, remarks string) error
	// ListByAsset historial completo, más recientes primero por issueDate.
	ListByAsset(assetID string) ([]*entity.AssignmentDetail, error)
	ListActiveByUser(userID string) ([]*entity.AssetAssignment, error)
}
