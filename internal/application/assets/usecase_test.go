package assets_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentasoft/pims-api/internal/application/assets"
	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetTypeRepo struct {
	types  map[string]*entity.AssetType
	fields []entity.AssetTypeField
}

func newFakeAssetTypeRepo() *fakeAssetTypeRepo {
	return &fakeAssetTypeRepo{types: make(map[string]*entity.AssetType)}
}

func (r *fakeAssetTypeRepo) Create(t *entity.AssetType) error { r.types[t.ID] = t; return nil }
func (r *fakeAssetTypeRepo) GetByID(id string) (*entity.AssetType, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	fields, _ := r.ListFields(id)
	cp := *t
	cp.Fields = fields
	return &cp, nil
}
func (r *fakeAssetTypeRepo) GetByName(name string) (*entity.AssetType, error) {
	for _, t := range r.types {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}
func (r *fakeAssetTypeRepo) List() ([]*entity.AssetType, error) {
	var list []*entity.AssetType
	for id := range r.types {
		t, _ := r.GetByID(id)
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
func (r *fakeAssetTypeRepo) AddField(f *entity.AssetTypeField) error {
	r.fields = append(r.fields, *f)
	return nil
}
func (r *fakeAssetTypeRepo) GetField(assetTypeID, fieldKey string) (*entity.AssetTypeField, error) {
	for _, f := range r.fields {
		if f.AssetTypeID == assetTypeID && f.FieldKey == fieldKey {
			cp := f
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeAssetTypeRepo) ListFields(assetTypeID string) ([]entity.AssetTypeField, error) {
	var list []entity.AssetTypeField
	for _, f := range r.fields {
		if f.AssetTypeID == assetTypeID {
			list = append(list, f)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].SortOrder < list[j].SortOrder })
	return list, nil
}

type fakeAssetRepo struct {
	assets map[string]*entity.Asset
	values []*entity.AssetFieldValue
	types  *fakeAssetTypeRepo
}

func newFakeAssetRepo(types *fakeAssetTypeRepo) *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*entity.Asset), types: types}
}

func (r *fakeAssetRepo) Create(a *entity.Asset) error                  { r.assets[a.ID] = a; return nil }
func (r *fakeAssetRepo) GetByID(id string) (*entity.Asset, error)      { return r.assets[id], nil }
func (r *fakeAssetRepo) GetForUpdate(id string) (*entity.Asset, error) { return r.assets[id], nil }
func (r *fakeAssetRepo) GetByNumber(assetNumber string) (*entity.Asset, error) {
	for _, a := range r.assets {
		if a.AssetNumber == assetNumber {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakeAssetRepo) List(filter repository.AssetFilter) ([]*entity.AssetDetail, error) {
	var list []*entity.AssetDetail
	for _, a := range r.assets {
		if filter.AssetTypeID != "" && a.AssetTypeID != filter.AssetTypeID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		list = append(list, &entity.AssetDetail{Asset: *a})
	}
	return list, nil
}
func (r *fakeAssetRepo) UpdateStatus(id, status string) error {
	if a, ok := r.assets[id]; ok {
		a.Status = status
	}
	return nil
}
func (r *fakeAssetRepo) Counts(filter repository.AssetFilter) (int64, map[string]int64, error) {
	list, _ := r.List(filter)
	byStatus := make(map[string]int64)
	for _, a := range list {
		byStatus[a.Status]++
	}
	return int64(len(list)), byStatus, nil
}
func (r *fakeAssetRepo) CreateFieldValue(v *entity.AssetFieldValue) error {
	r.values = append(r.values, v)
	return nil
}
func (r *fakeAssetRepo) ListFieldValues(assetID string) ([]*entity.AssetFieldValue, error) {
	var list []*entity.AssetFieldValue
	for _, v := range r.values {
		if v.AssetID == assetID {
			list = append(list, v)
		}
	}
	return list, nil
}
func (r *fakeAssetRepo) FieldValueExists(assetTypeID, fieldID string, value entity.FieldValue) (bool, error) {
	for _, v := range r.values {
		if v.FieldID != fieldID {
			continue
		}
		a := r.assets[v.AssetID]
		if a == nil || a.AssetTypeID != assetTypeID {
			continue
		}
		if v.Value.Kind() == value.Kind() && v.Value.Scalar() == value.Scalar() {
			return true, nil
		}
	}
	return false, nil
}

type fakeAssignmentRepo struct {
	assignments []*entity.AssetAssignment
}

func (r *fakeAssignmentRepo) Create(a *entity.AssetAssignment) error {
	cp := *a
	r.assignments = append(r.assignments, &cp)
	return nil
}
func (r *fakeAssignmentRepo) GetActiveByAsset(assetID string) (*entity.AssetAssignment, error) {
	for _, a := range r.assignments {
		if a.AssetID == assetID && a.HandoverDate == nil {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakeAssignmentRepo) Close(id string, handoverDate time.Time, remarks string) error {
	for _, a := range r.assignments {
		if a.ID == id {
			d := handoverDate
			a.HandoverDate = &d
			if remarks != "" {
				a.Remarks = remarks
			}
		}
	}
	return nil
}
func (r *fakeAssignmentRepo) ListByAsset(assetID string) ([]*entity.AssignmentDetail, error) {
	var list []*entity.AssignmentDetail
	for _, a := range r.assignments {
		if a.AssetID == assetID {
			list = append(list, &entity.AssignmentDetail{AssetAssignment: *a})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].IssueDate.After(list[j].IssueDate) })
	return list, nil
}
func (r *fakeAssignmentRepo) ListActiveByUser(userID string) ([]*entity.AssetAssignment, error) {
	var list []*entity.AssetAssignment
	for _, a := range r.assignments {
		if a.AssignedToUserID == userID && a.HandoverDate == nil {
			list = append(list, a)
		}
	}
	return list, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) List() ([]*entity.User, error)                { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                  { return nil }
func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error { return nil }
func (r *fakeUserRepo) Delete(id string) error                       { return nil }

type fakeTxRunner struct {
	assetRepo      *fakeAssetRepo
	assignmentRepo *fakeAssignmentRepo
}

func (r *fakeTxRunner) RunAssets(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	assignmentRepo repository.AssignmentRepository,
) error) error {
	return fn(r.assetRepo, r.assignmentRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID = "00000000-0000-0000-0000-0000000000aa"
	aliceID = "00000000-0000-0000-0000-0000000000bb"
	bobID   = "00000000-0000-0000-0000-0000000000cc"
)

type fixture struct {
	registry    *assets.RegistryUseCase
	lifecycle   *assets.LifecycleUseCase
	assetRepo   *fakeAssetRepo
	typeRepo    *fakeAssetTypeRepo
	assignments *fakeAssignmentRepo
}

func newFixture() *fixture {
	typeRepo := newFakeAssetTypeRepo()
	assetRepo := newFakeAssetRepo(typeRepo)
	assignments := &fakeAssignmentRepo{}
	users := newFakeUserRepo(
		&entity.User{ID: adminID, Name: "Admin", Email: "admin@pims.local", Role: entity.RoleAdmin},
		&entity.User{ID: aliceID, Name: "Alice", Email: "alice@pims.local", Role: entity.RoleUser},
		&entity.User{ID: bobID, Name: "Bob", Email: "bob@pims.local", Role: entity.RoleUser},
	)
	runner := &fakeTxRunner{assetRepo: assetRepo, assignmentRepo: assignments}
	return &fixture{
		registry:    assets.NewRegistryUseCase(runner, assetRepo, typeRepo, assignments, users),
		lifecycle:   assets.NewLifecycleUseCase(runner, assetRepo, assignments, users),
		assetRepo:   assetRepo,
		typeRepo:    typeRepo,
		assignments: assignments,
	}
}

// laptopType crea un tipo "Laptop" con serial requerido y único, y ram opcional.
func (f *fixture) laptopType(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	at, err := f.registry.CreateAssetType(ctx, dto.CreateAssetTypeRequest{Name: "Laptop"}, adminID)
	require.NoError(t, err)
	_, err = f.registry.AddField(ctx, at.ID, dto.CreateAssetTypeFieldRequest{
		FieldKey: "serial", FieldLabel: "Número de serie", DataType: entity.FieldTypeString,
		IsRequired: true, IsUniquePerType: true, SortOrder: 1,
	})
	require.NoError(t, err)
	_, err = f.registry.AddField(ctx, at.ID, dto.CreateAssetTypeFieldRequest{
		FieldKey: "ram_gb", FieldLabel: "RAM (GB)", DataType: entity.FieldTypeNumber, SortOrder: 2,
	})
	require.NoError(t, err)
	return at.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipos de activo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAssetType_NombreDuplicado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.registry.CreateAssetType(ctx, dto.CreateAssetTypeRequest{Name: "Laptop"}, adminID)
	require.NoError(t, err)

	_, err = f.registry.CreateAssetType(ctx, dto.CreateAssetTypeRequest{Name: "Laptop"}, adminID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddField_TipoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.registry.AddField(context.Background(), "no-existe", dto.CreateAssetTypeFieldRequest{
		FieldKey: "serial", FieldLabel: "Serie", DataType: entity.FieldTypeString,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddField_FieldKeyDuplicado(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)

	_, err := f.registry.AddField(context.Background(), typeID, dto.CreateAssetTypeFieldRequest{
		FieldKey: "serial", FieldLabel: "Otra serie", DataType: entity.FieldTypeString,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddField_DataTypeInvalido(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)

	_, err := f.registry.AddField(context.Background(), typeID, dto.CreateAssetTypeFieldRequest{
		FieldKey: "color", FieldLabel: "Color", DataType: "RAINBOW",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Activos con campos dinámicos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAsset_ValoresDinamicosValidos(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)

	out, err := f.registry.CreateAsset(context.Background(), dto.CreateAssetRequest{
		AssetTypeID: typeID,
		AssetNumber: "LT-001",
		DynamicValues: map[string]any{
			"serial": "SN-12345",
			"ram_gb": float64(16), // como llega desde encoding/json
		},
	}, adminID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetAvailable, out.Status, "todo activo nace AVAILABLE")

	detail, err := f.registry.GetAsset(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "SN-12345", detail.DynamicValues["serial"])
	assert.Len(t, detail.DynamicValues, 2)
}

func TestCreateAsset_FaltaCampoRequerido(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)

	_, err := f.registry.CreateAsset(context.Background(), dto.CreateAssetRequest{
		AssetTypeID:   typeID,
		AssetNumber:   "LT-002",
		DynamicValues: map[string]any{"ram_gb": float64(8)},
	}, adminID)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "serial", "el error debe nombrar el campo faltante")
	assert.Empty(t, f.assetRepo.assets, "el activo no debe persistirse")
}

func TestCreateAsset_CampoRequeridoVacio(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)

	_, err := f.registry.CreateAsset(context.Background(), dto.CreateAssetRequest{
		AssetTypeID:   typeID,
		AssetNumber:   "LT-003",
		DynamicValues: map[string]any{"serial": ""},
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateAsset_IgnoraClavesNoDefinidas(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)

	out, err := f.registry.CreateAsset(context.Background(), dto.CreateAssetRequest{
		AssetTypeID: typeID,
		AssetNumber: "LT-004",
		DynamicValues: map[string]any{
			"serial":   "SN-99999",
			"intrusa":  "no definida en el tipo",
			"otra_mas": 42,
		},
	}, adminID)
	require.NoError(t, err)

	detail, err := f.registry.GetAsset(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Len(t, detail.DynamicValues, 1, "solo se almacenan claves definidas en el esquema")
	assert.NotContains(t, detail.DynamicValues, "intrusa")
}

func TestCreateAsset_ValorUnicoPorTipoDuplicado(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)
	ctx := context.Background()
	_, err := f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-005",
		DynamicValues: map[string]any{"serial": "SN-DUP"},
	}, adminID)
	require.NoError(t, err)

	_, err = f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-006",
		DynamicValues: map[string]any{"serial": "SN-DUP"},
	}, adminID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "serial")
}

func TestCreateAsset_NumeroDeActivoDuplicado(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)
	ctx := context.Background()
	_, err := f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-007",
		DynamicValues: map[string]any{"serial": "SN-A"},
	}, adminID)
	require.NoError(t, err)

	_, err = f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-007",
		DynamicValues: map[string]any{"serial": "SN-B"},
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateAsset_ValorNumericoInvalido(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)

	_, err := f.registry.CreateAsset(context.Background(), dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-008",
		DynamicValues: map[string]any{"serial": "SN-X", "ram_gb": "dieciséis"},
	}, adminID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablero resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_ConteosPorEstado(t *testing.T) {
	f := newFixture()
	typeID := f.laptopType(t)
	ctx := context.Background()
	a1, err := f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-010",
		DynamicValues: map[string]any{"serial": "SN-1"},
	}, adminID)
	require.NoError(t, err)
	_, err = f.registry.CreateAsset(ctx, dto.CreateAssetRequest{
		AssetTypeID: typeID, AssetNumber: "LT-011",
		DynamicValues: map[string]any{"serial": "SN-2"},
	}, adminID)
	require.NoError(t, err)
	_, err = f.lifecycle.Assign(ctx, a1.ID, dto.AssignAssetRequest{
		AssignedToUserID: aliceID, IssueDate: "2026-01-15",
	}, adminID)
	require.NoError(t, err)

	summary, err := f.registry.Summary(ctx, repository.AssetFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, int64(1), summary.Available)
	assert.Equal(t, int64(1), summary.Assigned)
	assert.Equal(t, summary.Total,
		summary.Available+summary.Assigned+summary.Maintenance+summary.Retired+summary.Lost,
		"los conteos por estado deben sumar el total")
}
