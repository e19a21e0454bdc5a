package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReportRow una fila del reporte de stock por producto.
type StockReportRow struct {
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	InitialBalance int64   `json:"initialBalance"`
	TotalIn        int64   `json:"totalIn"` // incluye el saldo inicial
	TotalOut       int64   `json:"totalOut"`
	CurrentStock   int64   `json:"currentStock"`
	CreatedBy      UserRef `json:"createdBy"`
}

// ProductStockReport historial de un producto con saldo corriente por entrada.
type ProductStockReport struct {
	Product      StockReportProduct     `json:"product"`
	CurrentStock int64                  `json:"currentStock"`
	History      []StockHistoryRow      `json:"transactionHistory"`
}

// StockReportProduct cabecera del reporte por producto.
type StockReportProduct struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	InitialBalance int64   `json:"initialBalance"`
	CreatedBy      UserRef `json:"createdBy"`
}

// StockHistoryRow una entrada del libro con el saldo resultante.
type StockHistoryRow struct {
	ID              string           `json:"id"`
	Kind            string           `json:"transactionType"`
	Quantity        int64            `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unitPrice,omitempty"`
	VendorName      string           `json:"vendorName,omitempty"`
	RecipientUser   *UserRef         `json:"recipientUser"`
	Remarks         string           `json:"remarks,omitempty"`
	TransactionDate time.Time        `json:"transactionDate"`
	CreatedBy       UserRef          `json:"createdBy"`
	StockAfter      int64            `json:"stockAfterTransaction"`
}

// PriceHistoryRow una compra (IN o INITIAL) con precio unitario.
type PriceHistoryRow struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	Kind            string          `json:"transactionType"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"` // quantity * unitPrice
	VendorName      string          `json:"vendorName,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedBy       UserRef         `json:"createdBy"`
}

// ProductToPersonGroup agregación de salidas por (producto, receptor).
type ProductToPersonGroup struct {
	ProductID       string                `json:"productId"`
	ProductName     string                `json:"productName"`
	RecipientUserID string                `json:"recipientUserId"`
	RecipientName   string                `json:"recipientName"`
	TotalQuantity   int64                 `json:"totalQuantity"`
	Transactions    []ProductToPersonItem `json:"transactions"`
}

// ProductToPersonItem detalle de una salida dentro del grupo.
type ProductToPersonItem struct {
	ID              string    `json:"id"`
	Quantity        int64     `json:"quantity"`
	Remarks         string    `json:"remarks,omitempty"`
	TransactionDate time.Time `json:"transactionDate"`
	CreatedBy       UserRef   `json:"createdBy"`
}
