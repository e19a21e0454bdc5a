package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. InitialBalance es
// inmutable después de la creación; unitPrice viaja a la entrada INITIAL.
type CreateProductRequest struct {
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	InitialBalance int64            `json:"initialBalance" validate:"min=0"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
	VendorName     string           `json:"vendorName,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (solo el nombre es editable).
type UpdateProductRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// ProductResponse salida de un producto con su stock derivado.
type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	InitialBalance int64     `json:"initialBalance"`
	VendorName     string    `json:"vendorName,omitempty"`
	CurrentStock   int64     `json:"currentStock"`
	CreatedBy      string    `json:"createdById"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
