package assets_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
)

// assignedAsset crea un activo y lo asigna a alice con fecha 2026-01-10.
func (f *fixture) assignedAsset(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	typeID := f.laptopType(t)
	asset, err := f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-100",
		DynamicValues: map[string]any{"serial": "SN-100"},
	}, adminID)
	require.NoError(t, err)
	_, err = f.lifecycle.Assign(ctx, asset.ID, dto.AssignAssetRequest{
		AssignedToUserID: aliceID, IssueDate: "2026-01-10", Remarks: "entrega inicial",
	}, adminID)
	require.NoError(t, err)
	return asset.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Assign
// ──────────────────────────────────────────────────────────────────────────────

func TestAssign_ActivoDisponible(t *testing.T) {
	f := newFixture()
	assetID := f.assignedAsset(t)

	asset, err := f.assetRepo.GetByID(assetID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetAssigned, asset.Status)

	active, err := f.assignments.GetActiveByAsset(assetID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, aliceID, active.AssignedToUserID)
	assert.Equal(t, adminID, active.AssignedByUserID)
	assert.Nil(t, active.HandoverDate)
}

func TestAssign_ActivoYaAsignado(t *testing.T) {
	f := newFixture()
	assetID := f.assignedAsset(t)

	_, err := f.lifecycle.Assign(context.Background(), assetID, dto.AssignAssetRequest{
		AssignedToUserID: bobID, IssueDate: "2026-01-20",
	}, adminID)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	history, err := f.assignments.ListByAsset(assetID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "la asignación rechazada no deja fila")
}

func TestAssign_ActivoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.lifecycle.Assign(context.Background(), "no-existe", dto.AssignAssetRequest{
		AssignedToUserID: aliceID, IssueDate: "2026-01-10",
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_UsuarioInexistente(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)
	ctx := context.Background()
	asset, err := f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-101",
		DynamicValues: map[string]any{"serial": "SN-101"},
	}, adminID)
	require.NoError(t, err)

	_, err = f.lifecycle.Assign(ctx, asset.ID, dto.AssignAssetRequest{
		AssignedToUserID: "00000000-0000-0000-0000-0000000000ff", IssueDate: "2026-01-10",
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAssign_FechaInvalida(t *testing.T) {
	f := newFixture()
	_, err := f.lifecycle.Assign(context.Background(), "cualquiera", dto.AssignAssetRequest{
		AssignedToUserID: aliceID, IssueDate: "10/01/2026",
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Return
// ──────────────────────────────────────────────────────────────────────────────

func TestReturn_CierraAsignacionYLiberaActivo(t *testing.T) {
	f := newFixture()
	assetID := f.assignedAsset(t)
	ctx := context.Background()

	out, err := f.lifecycle.Return(ctx, assetID, dto.ReturnAssetRequest{
		HandoverDate: "2026-02-01", Remarks: "devuelto con cargador",
	})
	require.NoError(t, err)
	require.NotNil(t, out.HandoverDate)
	assert.Equal(t, "2026-02-01", out.HandoverDate.Format("2006-01-02"))
	assert.Equal(t, "devuelto con cargador", out.Remarks)

	asset, err := f.assetRepo.GetByID(assetID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetAvailable, asset.Status)

	active, err := f.assignments.GetActiveByAsset(assetID)
	require.NoError(t, err)
	assert.Nil(t, active, "no debe quedar asignación activa")

	history, err := f.assignments.ListByAsset(assetID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "la fila cerrada permanece en el historial")
}

func TestReturn_SinAsignacionActiva(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)
	ctx := context.Background()
	asset, err := f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-102",
		DynamicValues: map[string]any{"serial": "SN-102"},
	}, adminID)
	require.NoError(t, err)

	_, err = f.lifecycle.Return(ctx, asset.ID, dto.ReturnAssetRequest{HandoverDate: "2026-02-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReturn_SinRemarksConservaLasOriginales(t *testing.T) {
	f := newFixture()
	assetID := f.assignedAsset(t)

	out, err := f.lifecycle.Return(context.Background(), assetID, dto.ReturnAssetRequest{
		HandoverDate: "2026-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "entrega inicial", out.Remarks)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_CierraYAbreEnUnaTransaccion(t *testing.T) {
	f := newFixture()
	assetID := f.assignedAsset(t)
	ctx := context.Background()

	out, err := f.lifecycle.Transfer(ctx, assetID, dto.TransferAssetRequest{
		AssignedToUserID: bobID, IssueDate: "2026-03-01",
	}, adminID)
	require.NoError(t, err)
	assert.Equal(t, bobID, out.AssignedToUserID)
	assert.Nil(t, out.HandoverDate)

	asset, err := f.assetRepo.GetByID(assetID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetAssigned, asset.Status, "el activo nunca pasa por AVAILABLE")

	history, err := f.assignments.ListByAsset(assetID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// la fila anterior quedó cerrada con la fecha de emisión de la nueva
	closed := history[1]
	require.NotNil(t, closed.HandoverDate)
	assert.Equal(t, "2026-03-01", closed.HandoverDate.Format("2006-01-02"))
	assert.Equal(t, aliceID, closed.AssignedToUserID)

	active, err := f.assignments.GetActiveByAsset(assetID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, bobID, active.AssignedToUserID)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), active.IssueDate)
}

func TestTransfer_SinAsignacionActiva(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)
	ctx := context.Background()
	asset, err := f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-103",
		DynamicValues: map[string]any{"serial": "SN-103"},
	}, adminID)
	require.NoError(t, err)

	_, err = f.lifecycle.Transfer(ctx, asset.ID, dto.TransferAssetRequest{
		AssignedToUserID: bobID, IssueDate: "2026-03-01",
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestTransfer_DestinatarioInexistente(t *testing.T) {
	f := newFixture()
	assetID := f.assignedAsset(t)

	_, err := f.lifecycle.Transfer(context.Background(), assetID, dto.TransferAssetRequest{
		AssignedToUserID: "00000000-0000-0000-0000-0000000000ff", IssueDate: "2026-03-01",
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	history, err := f.assignments.ListByAsset(assetID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "la transferencia rechazada no toca el historial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Activos por usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestUserAssets_SoloAsignacionesActivas(t *testing.T) {
	f := newFixture()
	assetID := f.assignedAsset(t)
	ctx := context.Background()

	list, err := f.registry.UserAssets(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, assetID, list[0].ID)
	require.NotNil(t, list[0].CurrentAssignment)
	assert.Equal(t, aliceID, list[0].CurrentAssignment.AssignedToUserID)

	// tras transferir a bob, alice queda sin activos
	_, err = f.lifecycle.Transfer(ctx, assetID, dto.TransferAssetRequest{
		AssignedToUserID: bobID, IssueDate: "2026-03-01",
	}, adminID)
	require.NoError(t, err)

	list, err = f.registry.UserAssets(ctx, aliceID)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.registry.UserAssets(ctx, bobID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserAssets_UsuarioInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.registry.UserAssets(context.Background(), "00000000-0000-0000-0000-0000000000ff")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
