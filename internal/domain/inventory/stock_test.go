package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// CurrentStock
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentStock_SaldoInicialMasEntradasMenosSalidas(t *testing.T) {
	// Saldo inicial 100, entra 50, salen 30 → 120.
	assert.Equal(t, int64(120), inventory.CurrentStock(100, 50, 30))
}

func TestCurrentStock_SinMovimientos(t *testing.T) {
	assert.Equal(t, int64(100), inventory.CurrentStock(100, 0, 0),
		"sin movimientos el stock es el saldo inicial")
}

func TestCurrentStock_PuedeLlegarACero(t *testing.T) {
	assert.Equal(t, int64(0), inventory.CurrentStock(10, 5, 15))
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply (saldo corriente)
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaSumaSalidaResta(t *testing.T) {
	balance := int64(100)
	balance = inventory.Apply(balance, entity.TransactionIN, 50)
	assert.Equal(t, int64(150), balance)
	balance = inventory.Apply(balance, entity.TransactionOUT, 30)
	assert.Equal(t, int64(120), balance)
}

func TestApply_InitialNoAlteraElSaldo(t *testing.T) {
	// El saldo inicial ya es el punto de partida: la fila INITIAL no se suma.
	assert.Equal(t, int64(100), inventory.Apply(100, entity.TransactionINITIAL, 100))
}

func TestApply_SecuenciaCompletaReproduceElStock(t *testing.T) {
	// Mismo escenario que CurrentStock: INITIAL 100, IN 50, OUT 30.
	balance := int64(100)
	for _, mov := range []struct {
		kind string
		qty  int64
	}{
		{entity.TransactionINITIAL, 100},
		{entity.TransactionIN, 50},
		{entity.TransactionOUT, 30},
	} {
		balance = inventory.Apply(balance, mov.kind, mov.qty)
	}
	assert.Equal(t, inventory.CurrentStock(100, 50, 30), balance,
		"el saldo corriente debe cerrar con la fórmula derivada")
}

// ──────────────────────────────────────────────────────────────────────────────
// CanWithdraw (frontera de salida)
// ──────────────────────────────────────────────────────────────────────────────

func TestCanWithdraw_ExactamenteElStockDisponible(t *testing.T) {
	assert.True(t, inventory.CanWithdraw(120, 120),
		"retirar exactamente el stock disponible es legal")
}

func TestCanWithdraw_UnaUnidadDeMas(t *testing.T) {
	assert.False(t, inventory.CanWithdraw(120, 121))
}

func TestCanWithdraw_CantidadNoPositiva(t *testing.T) {
	assert.False(t, inventory.CanWithdraw(120, 0))
	assert.False(t, inventory.CanWithdraw(120, -5))
}
