package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetTypeRequest body para POST /api/asset-types.
type CreateAssetTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateAssetTypeFieldRequest body para POST /api/asset-types/:id/fields.
type CreateAssetTypeFieldRequest struct {
	FieldKey        string `json:"fieldKey" validate:"required,min=1,max=100"`
	FieldLabel      string `json:"fieldLabel" validate:"required,min=1,max=200"`
	DataType        string `json:"dataType" validate:"required,oneof=STRING NUMBER DATE TEXT BOOLEAN"`
	IsRequired      bool   `json:"isRequired"`
	IsUniquePerType bool   `json:"isUniquePerType"`
	SortOrder       int    `json:"sortOrder"`
}

// AssetTypeFieldResponse definición de un campo dinámico.
type AssetTypeFieldResponse struct {
	ID              string `json:"id"`
	FieldKey        string `json:"fieldKey"`
	FieldLabel      string `json:"fieldLabel"`
	DataType        string `json:"dataType"`
	IsRequired      bool   `json:"isRequired"`
	IsUniquePerType bool   `json:"isUniquePerType"`
	SortOrder       int    `json:"sortOrder"`
}

// AssetTypeResponse tipo de activo con sus campos ordenados por sortOrder.
type AssetTypeResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	IsActive  bool                     `json:"isActive"`
	CreatedBy string                   `json:"createdById"`
	CreatedAt time.Time                `json:"createdAt"`
	Fields    []AssetTypeFieldResponse `json:"fields"`
}

// CreateAssetRequest body para POST /api/assets. DynamicValues mapea
// fieldKey -> valor crudo; la coerción sigue el dataType declarado del campo.
type CreateAssetRequest struct {
	AssetTypeID   string           `json:"assetTypeId" validate:"required,uuid"`
	AssetNumber   string           `json:"assetNumber" validate:"required,min=1,max=100"`
	SerialNumber  string           `json:"serialNumber,omitempty"`
	VendorName    string           `json:"vendorName,omitempty"`
	PurchaseDate  string           `json:"purchaseDate,omitempty"` // YYYY-MM-DD
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	DynamicValues map[string]any   `json:"dynamicValues,omitempty"`
}

// AssetResponse salida de un activo en listados.
type AssetResponse struct {
	ID            string           `json:"id"`
	AssetTypeID   string           `json:"assetTypeId"`
	AssetTypeName string           `json:"assetTypeName,omitempty"`
	AssetNumber   string           `json:"assetNumber"`
	SerialNumber  string           `json:"serialNumber,omitempty"`
	Status        string           `json:"status"`
	VendorName    string           `json:"vendorName,omitempty"`
	PurchaseDate  *time.Time       `json:"purchaseDate,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	CreatedBy     string           `json:"createdById"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// AssetDetailResponse activo con valores dinámicos, asignación activa e historial.
type AssetDetailResponse struct {
	AssetResponse
	DynamicValues     map[string]any       `json:"dynamicValues"`
	CurrentAssignment *AssignmentResponse  `json:"currentAssignment"`
	AssignmentHistory []AssignmentResponse `json:"assignmentHistory"`
}

// AssetSummaryResponse tablero resumen: total y conteo por estado.
type AssetSummaryResponse struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Assigned    int64 `json:"assigned"`
	Maintenance int64 `json:"maintenance"`
	Retired     int64 `json:"retired"`
	Lost        int64 `json:"lost"`
}

// AssignAssetRequest body para POST /api/assets/:id/assign.
type AssignAssetRequest struct {
	AssignedToUserID string `json:"assignedToUserId" validate:"required,uuid"`
	IssueDate        string `json:"issueDate" validate:"required"` // YYYY-MM-DD
	Remarks          string `json:"remarks,omitempty"`
}

// ReturnAssetRequest body para POST /api/assets/:id/return.
type ReturnAssetRequest struct {
	HandoverDate string `json:"handoverDate" validate:"required"` // YYYY-MM-DD
	Remarks      string `json:"remarks,omitempty"`
}

// TransferAssetRequest body para POST /api/assets/:id/transfer.
type TransferAssetRequest struct {
	AssignedToUserID string `json:"assignedToUserId" validate:"required,uuid"`
	IssueDate        string `json:"issueDate" validate:"required"` // YYYY-MM-DD
	Remarks          string `json:"remarks,omitempty"`
}

// AssignmentResponse una fila del historial de asignaciones.
type AssignmentResponse struct {
	ID               string     `json:"id"`
	AssetID          string     `json:"assetId"`
	AssignedToUserID string     `json:"assignedToUserId"`
	AssignedToName   string     `json:"assignedToName,omitempty"`
	AssignedByUserID string     `json:"assignedByUserId"`
	AssignedByName   string     `json:"assignedByName,omitempty"`
	IssueDate        time.Time  `json:"issueDate"`
	HandoverDate     *time.Time `json:"handoverDate"`
	Remarks          string     `json:"remarks,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
