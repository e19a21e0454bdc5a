package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInRequest body para POST /api/inventory/in.
type CreateInRequest struct {
	ProductID  string          `json:"productId" validate:"required,uuid"`
	Quantity   int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unitPrice" validate:"required"`
	VendorName string          `json:"vendorName,omitempty"`
	Remarks    string          `json:"remarks,omitempty"`
}

// CreateOutRequest body para POST /api/inventory/out.
type CreateOutRequest struct {
	ProductID       string `json:"productId" validate:"required,uuid"`
	Quantity        int64  `json:"quantity" validate:"required,gt=0"`
	RecipientUserID string `json:"recipientUserId" validate:"required,uuid"`
	Remarks         string `json:"remarks,omitempty"`
}

// TransactionResponse salida de una entrada del libro con referencias resueltas.
type TransactionResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"productId"`
	ProductName     string           `json:"productName,omitempty"`
	Kind            string           `json:"transactionType"`
	Quantity        int64            `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unitPrice,omitempty"`
	VendorName      string           `json:"vendorName,omitempty"`
	RecipientUserID string           `json:"recipientUserId,omitempty"`
	RecipientName   string           `json:"recipientName,omitempty"`
	Remarks         string           `json:"remarks,omitempty"`
	CreatedBy       string           `json:"createdById"`
	CreatedByName   string           `json:"createdByName,omitempty"`
	TransactionDate time.Time        `json:"transactionDate"`
}

// StockResponse stock derivado de un producto.
type StockResponse struct {
	ProductID    string `json:"productId"`
	CurrentStock int64  `json:"currentStock"`
}
