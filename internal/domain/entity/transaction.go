package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	TransactionINITIAL = "INITIAL" // saldo inicial, exactamente uno por producto
	TransactionIN      = "IN"      // entrada
	TransactionOUT     = "OUT"     // salida hacia un usuario receptor
)

// InventoryTransaction es una entrada del libro de movimientos (append-only).
// Nunca se actualiza ni se borra individualmente; solo se eliminan en cascada
// cuando el producto se borra sin movimientos más allá del INITIAL.
type InventoryTransaction struct {
	ID              string
	ProductID       string
	Kind            string // INITIAL | IN | OUT
	Quantity        int64  // siempre positivo; el signo lo da Kind
	UnitPrice       *decimal.Decimal // solo IN/INITIAL
	VendorName      string           // solo IN/INITIAL
	RecipientUserID string           // solo OUT; vacío = NULL
	Remarks         string
	CreatedBy       string // UserID
	TransactionDate time.Time
}

// TransactionDetail es una entrada del libro con las referencias resueltas
// (nombres de producto, receptor y creador) para listados y reportes.
type TransactionDetail struct {
	InventoryTransaction
	ProductName   string
	RecipientName string
	CreatedByName string
}
