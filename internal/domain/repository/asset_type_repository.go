package repository

import "github.com/pentasoft/pims-api/internal/domain/entity"

// AssetTypeRepository define el puerto de persistencia para los tipos de
// activo y sus definiciones de campos dinámicos.
type AssetTypeRepository interface {
	Create(assetType *entity.AssetType) error
	GetByID(id string) (*entity.AssetType, error)
	GetByName(name string) (*entity.AssetType, error)
	// List devuelve los tipos con sus campos, ordenados por nombre y sortOrder.
	List() ([]*entity.AssetType, error)

	AddField(field *entity.AssetTypeField) error
	GetField(assetTypeID, fieldKey string) (*entity.AssetTypeField, error)
	ListFields(assetTypeID string) ([]entity.AssetTypeField, error)
}
