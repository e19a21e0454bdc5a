package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

var _ repository.AssetTypeRepository = (*AssetTypeRepo)(nil)

// AssetTypeRepo implementación del puerto AssetTypeRepository sobre PostgreSQL (usable con pool o tx).
type AssetTypeRepo struct {
	q Querier
}

// NewAssetTypeRepository construye el adaptador de persistencia para tipos de activo. Pasar pool o tx (Querier).
func NewAssetTypeRepository(q Querier) *AssetTypeRepo {
	return &AssetTypeRepo{q: q}
}

// Create persiste un nuevo tipo de activo.
func (r *AssetTypeRepo) Create(assetType *entity.AssetType) error {
	query := `
		INSERT INTO asset_types (id, name, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		assetType.ID, assetType.Name, assetType.IsActive, assetType.CreatedBy, assetType.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el tipo de activo %q ya existe", domain.ErrConflict, assetType.Name)
		}
		return fmt.Errorf("insert asset type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo con sus campos.
func (r *AssetTypeRepo) GetByID(id string) (*entity.AssetType, error) {
	return r.getOne(`SELECT id, name, is_active, created_by, created_at FROM asset_types WHERE id = $1`, id)
}

// GetByName obtiene un tipo por nombre exacto.
func (r *AssetTypeRepo) GetByName(name string) (*entity.AssetType, error) {
	return r.getOne(`SELECT id, name, is_active, created_by, created_at FROM asset_types WHERE name = $1`, name)
}

func (r *AssetTypeRepo) getOne(query string, arg any) (*entity.AssetType, error) {
	var t entity.AssetType
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &t.Name, &t.IsActive, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset type: %w", err)
	}
	fields, err := r.ListFields(t.ID)
	if err != nil {
		return nil, err
	}
	t.Fields = fields
	return &t, nil
}

// List devuelve todos los tipos con sus campos, ordenados por nombre.
func (r *AssetTypeRepo) List() ([]*entity.AssetType, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, is_active, created_by, created_at FROM asset_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list asset types: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssetType
	for rows.Next() {
		var t entity.AssetType
		if err := rows.Scan(&t.ID, &t.Name, &t.IsActive, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset type: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		fields, err := r.ListFields(t.ID)
		if err != nil {
			return nil, err
		}
		t.Fields = fields
	}
	return list, nil
}

// AddField persiste una definición de campo dinámico.
func (r *AssetTypeRepo) AddField(field *entity.AssetTypeField) error {
	query := `
		INSERT INTO asset_type_fields
			(id, asset_type_id, field_key, field_label, data_type, is_required, is_unique_per_type, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		field.ID, field.AssetTypeID, field.FieldKey, field.FieldLabel, field.DataType,
		field.IsRequired, field.IsUniquePerType, field.SortOrder, field.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el campo %q ya existe para este tipo", domain.ErrConflict, field.FieldKey)
		}
		return fmt.Errorf("insert asset type field: %w", err)
	}
	return nil
}

// GetField obtiene una definición por (tipo, fieldKey).
func (r *AssetTypeRepo) GetField(assetTypeID, fieldKey string) (*entity.AssetTypeField, error) {
	query := `
		SELECT id, asset_type_id, field_key, field_label, data_type, is_required, is_unique_per_type, sort_order, created_at
		FROM asset_type_fields WHERE asset_type_id = $1 AND field_key = $2`
	var f entity.AssetTypeField
	err := r.q.QueryRow(context.Background(), query, assetTypeID, fieldKey).Scan(
		&f.ID, &f.AssetTypeID, &f.FieldKey, &f.FieldLabel, &f.DataType,
		&f.IsRequired, &f.IsUniquePerType, &f.SortOrder, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset type field: %w", err)
	}
	return &f, nil
}

// ListFields devuelve las definiciones de un tipo ordenadas por sortOrder.
func (r *AssetTypeRepo) ListFields(assetTypeID string) ([]entity.AssetTypeField, error) {
	query := `
		SELECT id, asset_type_id, field_key, field_label, data_type, is_required, is_unique_per_type, sort_order, created_at
		FROM asset_type_fields WHERE asset_type_id = $1 ORDER BY sort_order, field_key`
	rows, err := r.q.Query(context.Background(), query, assetTypeID)
	if err != nil {
		return nil, fmt.Errorf("list asset type fields: %w", err)
	}
	defer rows.Close()
	var list []entity.AssetTypeField
	for rows.Next() {
		var f entity.AssetTypeField
		if err := rows.Scan(&f.ID, &f.AssetTypeID, &f.FieldKey, &f.FieldLabel, &f.DataType,
			&f.IsRequired, &f.IsUniquePerType, &f.SortOrder, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset type field: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
