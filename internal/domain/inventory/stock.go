// Package inventory contiene la aritmética pura del stock derivado
// (servicio de dominio, sin efectos ni dependencias de infraestructura).
package inventory

import "github.com/pentasoft/pims-api/internal/domain/entity"

// CurrentStock deriva el stock actual de un producto desde su saldo inicial
// y las sumas del libro: StockActual = SaldoInicial + ΣIN − ΣOUT.
func CurrentStock(initialBalance, sumIn, sumOut int64) int64 {
	return initialBalance + sumIn - sumOut
}

// Apply aplica una entrada del libro a un saldo corriente.
// INITIAL no altera el saldo: el saldo inicial ya es el punto de partida.
func Apply(balance int64, kind string, quantity int64) int64 {
	switch kind {
	case entity.TransactionIN:
		return balance + quantity
	case entity.TransactionOUT:
		return balance - quantity
	}
	return balance
}

// CanWithdraw indica si una salida de quantity unidades es legal con el stock dado.
func CanWithdraw(currentStock, quantity int64) bool {
	return quantity > 0 && quantity <= currentStock
}
