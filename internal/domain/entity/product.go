package entity

import "time"

// Product representa un producto rastreado por el libro de movimientos.
// InitialBalance es inmutable después de la creación; el stock actual nunca
// se almacena, se deriva del libro (ver domain/inventory).
type Product struct {
	ID             string
	Name           string
	InitialBalance int64
	VendorName     string // opcional
	CreatedBy      string // UserID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
