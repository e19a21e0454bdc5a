package repository

import "github.com/pentasoft/pims-api/internal/domain/entity"

// AssetFilter filtros comunes de los listados y del tablero resumen.
// Se aplican de forma idéntica a cada consulta de conteo.
type AssetFilter struct {
	AssetTypeID string
	Status      string
	Query       string // substring sobre assetNumber o serialNumber
}

// AssetRepository define el puerto de persistencia para activos y valores
// de campos dinámicos. GetForUpdate bloquea la fila del activo dentro de la
// transacción en curso.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	GetForUpdate(id string) (*entity.Asset, error)
	GetByNumber(assetNumber string) (*entity.Asset, error)
	// List devuelve activos con el nombre de tipo resuelto, más recientes primero.
	List(filter AssetFilter) ([]*entity.AssetDetail, error)
	UpdateStatus(id, status string) error
	// Counts devuelve el total y el conteo por estado con los mismos filtros.
	Counts(filter AssetFilter) (total int64, byStatus map[string]int64, err error)

	CreateFieldValue(value *entity.AssetFieldValue) error
	ListFieldValues(assetID string) ([]*entity.AssetFieldValue, error)
	// FieldValueExists indica si algún activo del tipo ya almacena el mismo
	// valor para el campo (soporte de isUniquePerType).
	FieldValueExists(assetTypeID, fieldID string, value entity.FieldValue) (bool, error)
}
