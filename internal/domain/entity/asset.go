package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un activo. MAINTENANCE, RETIRED y LOST existen en el modelo pero
// ninguna operación de la API transiciona hacia ellos.
const (
	AssetAvailable   = "AVAILABLE"
	AssetAssigned    = "ASSIGNED"
	AssetMaintenance = "MAINTENANCE"
	AssetRetired     = "RETIRED"
	AssetLost        = "LOST"
)

// AssetStatuses lista los estados en el orden del tablero resumen.
var AssetStatuses = []string{AssetAvailable, AssetAssigned, AssetMaintenance, AssetRetired, AssetLost}

// Asset es un activo organizacional con campos dinámicos según su tipo.
type Asset struct {
	ID            string
	AssetTypeID   string
	AssetNumber   string // único
	SerialNumber  string // opcional
	Status        string
	VendorName    string           // opcional
	PurchaseDate  *time.Time       // opcional
	PurchasePrice *decimal.Decimal // opcional
	CreatedBy     string           // UserID
	CreatedAt     time.Time
}

// AssetDetail es un activo con el nombre de su tipo resuelto (listados).
type AssetDetail struct {
	Asset
	AssetTypeName string
}

// AssetAssignment registra la entrega de un activo a un usuario.
// HandoverDate == nil marca la asignación activa; como máximo una por activo.
// El historial es append-only: devolver cierra la fila, transferir cierra la
// activa y abre otra en la misma transacción.
type AssetAssignment struct {
	ID               string
	AssetID          string
	AssignedToUserID string
	AssignedByUserID string
	IssueDate        time.Time
	HandoverDate     *time.Time
	Remarks          string
	CreatedAt        time.Time
}

// Active indica si la asignación sigue vigente.
func (a AssetAssignment) Active() bool { return a.HandoverDate == nil }

// AssignmentDetail es una asignación con los nombres de usuario resueltos.
type AssignmentDetail struct {
	AssetAssignment
	AssignedToName string
	AssignedByName string
}
