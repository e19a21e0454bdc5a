package assets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// RegistryUseCase gestiona tipos de activo (con esquema dinámico) y activos.
type RegistryUseCase struct {
	txRunner    TxRunner
	assets      repository.AssetRepository
	assetTypes  repository.AssetTypeRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(
	txRunner TxRunner,
	assets repository.AssetRepository,
	assetTypes repository.AssetTypeRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
) *RegistryUseCase {
	return &RegistryUseCase{
		txRunner:    txRunner,
		assets:      assets,
		assetTypes:  assetTypes,
		assignments: assignments,
		users:       users,
	}
}

// ── Tipos de activo ───────────────────────────────────────────────────────────

// CreateAssetType crea un tipo de activo. El nombre es único
// (comparación exacta, sensible a mayúsculas).
func (uc *RegistryUseCase) CreateAssetType(ctx context.Context, in dto.CreateAssetTypeRequest, actingUserID string) (*dto.AssetTypeResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.assetTypes.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el tipo de activo %q ya existe", domain.ErrConflict, in.Name)
	}
	assetType := &entity.AssetType{
		ID:        uuid.New().String(),
		Name:      in.Name,
		IsActive:  true,
		CreatedBy: actingUserID,
		CreatedAt: time.Now(),
	}
	if err := uc.assetTypes.Create(assetType); err != nil {
		return nil, err
	}
	return toAssetTypeResponse(assetType), nil
}

// ListAssetTypes devuelve todos los tipos con sus campos ordenados.
func (uc *RegistryUseCase) ListAssetTypes(ctx context.Context) ([]dto.AssetTypeResponse, error) {
	types, err := uc.assetTypes.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, *toAssetTypeResponse(t))
	}
	return out, nil
}

// AddField añade una definición de campo dinámico a un tipo.
// (assetTypeId, fieldKey) es único; el campo es inmutable una vez creado.
func (uc *RegistryUseCase) AddField(ctx context.Context, assetTypeID string, in dto.CreateAssetTypeFieldRequest) (*dto.AssetTypeFieldResponse, error) {
	if in.FieldKey == "" || in.FieldLabel == "" || !entity.ValidFieldType(in.DataType) {
		return nil, domain.ErrInvalidInput
	}
	assetType, err := uc.assetTypes.GetByID(assetTypeID)
	if err != nil {
		return nil, err
	}
	if assetType == nil {
		return nil, fmt.Errorf("%w: tipo de activo %s", domain.ErrNotFound, assetTypeID)
	}
	existing, err := uc.assetTypes.GetField(assetTypeID, in.FieldKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el campo %q ya existe para este tipo", domain.ErrConflict, in.FieldKey)
	}
	field := &entity.AssetTypeField{
		ID:              uuid.New().String(),
		AssetTypeID:     assetTypeID,
		FieldKey:        in.FieldKey,
		FieldLabel:      in.FieldLabel,
		DataType:        in.DataType,
		IsRequired:      in.IsRequired,
		IsUniquePerType: in.IsUniquePerType,
		SortOrder:       in.SortOrder,
		CreatedAt:       time.Now(),
	}
	if err := uc.assetTypes.AddField(field); err != nil {
		return nil, err
	}
	resp := toFieldResponse(*field)
	return &resp, nil
}

// ── Activos ───────────────────────────────────────────────────────────────────

// CreateAsset valida el payload dinámico contra el esquema del tipo y crea
// el activo (estado AVAILABLE) junto con sus valores de campos en una sola
// transacción. Claves no definidas en el tipo se ignoran; los campos
// requeridos deben venir con valor no vacío; los campos isUniquePerType no
// pueden repetir valor dentro del tipo.
func (uc *RegistryUseCase) CreateAsset(ctx context.Context, in dto.CreateAssetRequest, actingUserID string) (*dto.AssetResponse, error) {
	if in.AssetTypeID == "" || in.AssetNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	assetType, err := uc.assetTypes.GetByID(in.AssetTypeID)
	if err != nil {
		return nil, err
	}
	if assetType == nil {
		return nil, fmt.Errorf("%w: tipo de activo %s", domain.ErrNotFound, in.AssetTypeID)
	}
	existing, err := uc.assets.GetByNumber(in.AssetNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el número de activo %q ya existe", domain.ErrConflict, in.AssetNumber)
	}

	fields, err := uc.assetTypes.ListFields(in.AssetTypeID)
	if err != nil {
		return nil, err
	}
	values, err := uc.validateDynamicValues(fields, in.DynamicValues, in.AssetTypeID)
	if err != nil {
		return nil, err
	}

	var purchaseDate *time.Time
	if in.PurchaseDate != "" {
		d, err := time.Parse("2006-01-02", in.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de compra inválida %q", domain.ErrValidation, in.PurchaseDate)
		}
		purchaseDate = &d
	}

	asset := &entity.Asset{
		ID:            uuid.New().String(),
		AssetTypeID:   in.AssetTypeID,
		AssetNumber:   in.AssetNumber,
		SerialNumber:  in.SerialNumber,
		Status:        entity.AssetAvailable, // estado inicial forzado
		VendorName:    in.VendorName,
		PurchaseDate:  purchaseDate,
		PurchasePrice: in.PurchasePrice,
		CreatedBy:     actingUserID,
		CreatedAt:     time.Now(),
	}
	err = uc.txRunner.RunAssets(ctx, func(assetRepo repository.AssetRepository, _ repository.AssignmentRepository) error {
		if err := assetRepo.Create(asset); err != nil {
			return err
		}
		for _, v := range values {
			v.AssetID = asset.ID
			if err := assetRepo.CreateFieldValue(v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toAssetResponse(asset, assetType.Name)
	return &resp, nil
}

// validateDynamicValues aplica el esquema del tipo al payload dinámico:
// requeridos presentes y no vacíos, coerción al tipo declarado, unicidad
// por tipo cuando el campo la declara.
func (uc *RegistryUseCase) validateDynamicValues(fields []entity.AssetTypeField, raw map[string]any, assetTypeID string) ([]*entity.AssetFieldValue, error) {
	var values []*entity.AssetFieldValue
	for _, field := range fields {
		v, present := raw[field.FieldKey]
		empty := !present || v == nil || v == ""
		if field.IsRequired && empty {
			return nil, fmt.Errorf("%w: falta el campo requerido %q (%s)", domain.ErrValidation, field.FieldLabel, field.FieldKey)
		}
		if empty {
			continue
		}
		parsed, err := entity.ParseFieldValue(field.DataType, v)
		if err != nil {
			return nil, fmt.Errorf("%w: campo %q: %v", domain.ErrValidation, field.FieldKey, err)
		}
		if field.IsUniquePerType {
			exists, err := uc.assets.FieldValueExists(assetTypeID, field.ID, parsed)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: el valor del campo %q ya está en uso para este tipo", domain.ErrConflict, field.FieldKey)
			}
		}
		values = append(values, &entity.AssetFieldValue{
			FieldID:  field.ID,
			FieldKey: field.FieldKey,
			Value:    parsed,
		})
	}
	return values, nil
}

// GetAsset devuelve el activo con su mapa de valores dinámicos, la
// asignación activa (si existe) y el historial completo, más reciente primero.
func (uc *RegistryUseCase) GetAsset(ctx context.Context, id string) (*dto.AssetDetailResponse, error) {
	asset, err := uc.assets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	assetType, err := uc.assetTypes.GetByID(asset.AssetTypeID)
	if err != nil {
		return nil, err
	}
	typeName := ""
	if assetType != nil {
		typeName = assetType.Name
	}

	fieldValues, err := uc.assets.ListFieldValues(id)
	if err != nil {
		return nil, err
	}
	dynamicValues := make(map[string]any, len(fieldValues))
	for _, fv := range fieldValues {
		dynamicValues[fv.FieldKey] = fv.Value.Scalar()
	}

	history, err := uc.assignments.ListByAsset(id)
	if err != nil {
		return nil, err
	}
	historyDTO := make([]dto.AssignmentResponse, 0, len(history))
	var current *dto.AssignmentResponse
	for _, h := range history {
		r := toAssignmentResponse(h)
		historyDTO = append(historyDTO, r)
		if h.Active() && current == nil {
			c := r
			current = &c
		}
	}

	return &dto.AssetDetailResponse{
		AssetResponse:     toAssetResponse(asset, typeName),
		DynamicValues:     dynamicValues,
		CurrentAssignment: current,
		AssignmentHistory: historyDTO,
	}, nil
}

// ListAssets filtra por tipo, estado y texto libre (assetNumber o serialNumber).
func (uc *RegistryUseCase) ListAssets(ctx context.Context, filter repository.AssetFilter) ([]dto.AssetResponse, error) {
	list, err := uc.assets.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssetResponse(&a.Asset, a.AssetTypeName))
	}
	return out, nil
}

// Summary devuelve el total y los conteos por estado, con los mismos
// filtros aplicados a cada conteo.
func (uc *RegistryUseCase) Summary(ctx context.Context, filter repository.AssetFilter) (*dto.AssetSummaryResponse, error) {
	total, byStatus, err := uc.assets.Counts(filter)
	if err != nil {
		return nil, err
	}
	return &dto.AssetSummaryResponse{
		Total:       total,
		Available:   byStatus[entity.AssetAvailable],
		Assigned:    byStatus[entity.AssetAssigned],
		Maintenance: byStatus[entity.AssetMaintenance],
		Retired:     byStatus[entity.AssetRetired],
		Lost:        byStatus[entity.AssetLost],
	}, nil
}

// UserAssets devuelve los activos actualmente asignados a un usuario.
func (uc *RegistryUseCase) UserAssets(ctx context.Context, userID string) ([]dto.AssetDetailResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	active, err := uc.assignments.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetDetailResponse, 0, len(active))
	for _, assignment := range active {
		asset, err := uc.assets.GetByID(assignment.AssetID)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			continue
		}
		assetType, err := uc.assetTypes.GetByID(asset.AssetTypeID)
		if err != nil {
			return nil, err
		}
		typeName := ""
		if assetType != nil {
			typeName = assetType.Name
		}
		r := toAssignmentResponse(&entity.AssignmentDetail{AssetAssignment: *assignment, AssignedToName: user.Name})
		out = append(out, dto.AssetDetailResponse{
			AssetResponse:     toAssetResponse(asset, typeName),
			CurrentAssignment: &r,
		})
	}
	return out, nil
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func toAssetTypeResponse(t *entity.AssetType) *dto.AssetTypeResponse {
	fields := make([]dto.AssetTypeFieldResponse, 0, len(t.Fields))
	sorted := append([]entity.AssetTypeField(nil), t.Fields...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SortOrder < sorted[j].SortOrder })
	for _, f := range sorted {
		fields = append(fields, toFieldResponse(f))
	}
	return &dto.AssetTypeResponse{
		ID:        t.ID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		Fields:    fields,
	}
}

func toFieldResponse(f entity.AssetTypeField) dto.AssetTypeFieldResponse {
	return dto.AssetTypeFieldResponse{
		ID:              f.ID,
		FieldKey:        f.FieldKey,
		FieldLabel:      f.FieldLabel,
		DataType:        f.DataType,
		IsRequired:      f.IsRequired,
		IsUniquePerType: f.IsUniquePerType,
		SortOrder:       f.SortOrder,
	}
}

func toAssetResponse(a *entity.Asset, typeName string) dto.AssetResponse {
	return dto.AssetResponse{
		ID:            a.ID,
		AssetTypeID:   a.AssetTypeID,
		AssetTypeName: typeName,
		AssetNumber:   a.AssetNumber,
		SerialNumber:  a.SerialNumber,
		Status:        a.Status,
		VendorName:    a.VendorName,
		PurchaseDate:  a.PurchaseDate,
		PurchasePrice: a.PurchasePrice,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
	}
}

func toAssignmentResponse(a *entity.AssignmentDetail) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:               a.ID,
		AssetID:          a.AssetID,
		AssignedToUserID: a.AssignedToUserID,
		AssignedToName:   a.AssignedToName,
		AssignedByUserID: a.AssignedByUserID,
		AssignedByName:   a.AssignedByName,
		IssueDate:        a.IssueDate,
		HandoverDate:     a.HandoverDate,
		Remarks:          a.Remarks,
		CreatedAt:        a.CreatedAt,
	}
}
