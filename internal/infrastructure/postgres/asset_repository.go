package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pentasoft/pims-api/internal/domain"
	"github.com/pentasoft/pims-api/internal/domain/entity"
	"github.com/pentasoft/pims-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL (usable con pool o tx).
// Los valores de campos dinámicos se proyectan de la variante tipada a una
// columna por tipo de dato (value_string, value_number, value_date, value_boolean).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de persistencia para activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, asset_type_id, asset_number, serial_number, status, vendor_name, purchase_date, purchase_price, created_by, created_at`

// Create persiste un nuevo activo.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (id, asset_type_id, asset_number, serial_number, status, vendor_name, purchase_date, purchase_price, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.AssetTypeID, asset.AssetNumber, asset.SerialNumber, asset.Status,
		asset.VendorName, asset.PurchaseDate, asset.PurchasePrice, asset.CreatedBy, asset.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el número de activo %q ya existe", domain.ErrConflict, asset.AssetNumber)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	return r.getOne(`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
}

// GetForUpdate obtiene un activo bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción del TxRunner.
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	return r.getOne(`SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumber obtiene un activo por su número único.
func (r *AssetRepo) GetByNumber(assetNumber string) (*entity.Asset, error) {
	return r.getOne(`SELECT `+assetColumns+` FROM assets WHERE asset_number = $1`, assetNumber)
}

func (r *AssetRepo) getOne(query string, arg any) (*entity.Asset, error) {
	var a entity.Asset
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.AssetTypeID, &a.AssetNumber, &a.SerialNumber, &a.Status,
		&a.VendorName, &a.PurchaseDate, &a.PurchasePrice, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &a, nil
}

// filterClause arma el WHERE común de listados y conteos. Los mismos filtros
// se aplican a cada conteo del tablero resumen.
func filterClause(filter repository.AssetFilter, args []any) (string, []any) {
	clause := ""
	if filter.AssetTypeID != "" {
		args = append(args, filter.AssetTypeID)
		clause += fmt.Sprintf(" AND a.asset_type_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clause += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		clause += fmt.Sprintf(" AND (a.asset_number ILIKE $%d OR a.serial_number ILIKE $%d)", len(args), len(args))
	}
	return clause, args
}

// List devuelve activos con el nombre de tipo resuelto, más recientes primero.
func (r *AssetRepo) List(filter repository.AssetFilter) ([]*entity.AssetDetail, error) {
	query := `
		SELECT a.id, a.asset_type_id, a.asset_number, a.serial_number, a.status, a.vendor_name,
		       a.purchase_date, a.purchase_price, a.created_by, a.created_at, t.name
		FROM assets a
		JOIN asset_types t ON t.id = a.asset_type_id
		WHERE TRUE`
	clause, args := filterClause(filter, nil)
	query += clause + ` ORDER BY a.created_at DESC, a.asset_number`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssetDetail
	for rows.Next() {
		var d entity.AssetDetail
		if err := rows.Scan(&d.ID, &d.AssetTypeID, &d.AssetNumber, &d.SerialNumber, &d.Status,
			&d.VendorName, &d.PurchaseDate, &d.PurchasePrice, &d.CreatedBy, &d.CreatedAt, &d.AssetTypeName); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de un activo.
func (r *AssetRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE assets SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update asset status: %w", err)
	}
	return nil
}

// Counts devuelve el total y el conteo por estado con los mismos filtros.
func (r *AssetRepo) Counts(filter repository.AssetFilter) (int64, map[string]int64, error) {
	query := `SELECT a.status, COUNT(*) FROM assets a WHERE TRUE`
	clause, args := filterClause(filter, nil)
	query += clause + ` GROUP BY a.status`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("count assets: %w", err)
	}
	defer rows.Close()
	var total int64
	byStatus := make(map[string]int64, len(entity.AssetStatuses))
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return 0, nil, fmt.Errorf("scan asset count: %w", err)
		}
		byStatus[status] = count
		total += count
	}
	return total, byStatus, rows.Err()
}

// CreateFieldValue persiste el valor de un campo dinámico proyectando la
// variante sobre la columna tipada que corresponde.
func (r *AssetRepo) CreateFieldValue(value *entity.AssetFieldValue) error {
	var (
		valStr  *string
		valNum  *decimal.Decimal
		valDate *time.Time
		valBool *bool
	)
	switch value.Value.Kind() {
	case entity.FieldTypeString, entity.FieldTypeText:
		s := value.Value.Str()
		valStr = &s
	case entity.FieldTypeNumber:
		n := value.Value.Num()
		valNum = &n
	case entity.FieldTypeDate:
		d := value.Value.Date()
		valDate = &d
	case entity.FieldTypeBoolean:
		b := value.Value.Bool()
		valBool = &b
	default:
		return fmt.Errorf("tipo de campo desconocido %q", value.Value.Kind())
	}
	query := `
		INSERT INTO asset_field_values (asset_id, field_id, data_type, value_string, value_number, value_date, value_boolean)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		value.AssetID, value.FieldID, value.Value.Kind(), valStr, valNum, valDate, valBool,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el activo ya tiene valor para el campo", domain.ErrConflict)
		}
		return fmt.Errorf("insert field value: %w", err)
	}
	return nil
}

// ListFieldValues reconstruye las variantes de un activo con su fieldKey.
func (r *AssetRepo) ListFieldValues(assetID string) ([]*entity.AssetFieldValue, error) {
	query := `
		SELECT v.asset_id, v.field_id, f.field_key, v.data_type, v.value_string, v.value_number, v.value_date, v.value_boolean
		FROM asset_field_values v
		JOIN asset_type_fields f ON f.id = v.field_id
		WHERE v.asset_id = $1
		ORDER BY f.sort_order, f.field_key`
	rows, err := r.q.Query(context.Background(), query, assetID)
	if err != nil {
		return nil, fmt.Errorf("list field values: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssetFieldValue
	for rows.Next() {
		var (
			fv      entity.AssetFieldValue
			kind    string
			valStr  *string
			valNum  *decimal.Decimal
			valDate *time.Time
			valBool *bool
		)
		if err := rows.Scan(&fv.AssetID, &fv.FieldID, &fv.FieldKey, &kind, &valStr, &valNum, &valDate, &valBool); err != nil {
			return nil, fmt.Errorf("scan field value: %w", err)
		}
		value, err := rebuildFieldValue(kind, valStr, valNum, valDate, valBool)
		if err != nil {
			return nil, err
		}
		fv.Value = value
		list = append(list, &fv)
	}
	return list, rows.Err()
}

// FieldValueExists indica si algún activo del tipo ya almacena el mismo valor
// para el campo (soporte de isUniquePerType).
func (r *AssetRepo) FieldValueExists(assetTypeID, fieldID string, value entity.FieldValue) (bool, error) {
	base := `
		SELECT EXISTS (
			SELECT 1 FROM asset_field_values v
			JOIN assets a ON a.id = v.asset_id
			WHERE a.asset_type_id = $1 AND v.field_id = $2 AND %s = $3
		)`
	var column string
	var arg any
	switch value.Kind() {
	case entity.FieldTypeString, entity.FieldTypeText:
		column, arg = "v.value_string", value.Str()
	case entity.FieldTypeNumber:
		column, arg = "v.value_number", value.Num()
	case entity.FieldTypeDate:
		column, arg = "v.value_date", value.Date()
	case entity.FieldTypeBoolean:
		column, arg = "v.value_boolean", value.Bool()
	default:
		return false, fmt.Errorf("tipo de campo desconocido %q", value.Kind())
	}
	var exists bool
	err := r.q.QueryRow(context.Background(), fmt.Sprintf(base, column), assetTypeID, fieldID, arg).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check field value: %w", err)
	}
	return exists, nil
}

func rebuildFieldValue(kind string, valStr *string, valNum *decimal.Decimal, valDate *time.Time, valBool *bool) (entity.FieldValue, error) {
	switch kind {
	case entity.FieldTypeString:
		if valStr != nil {
			return entity.StringValue(*valStr), nil
		}
	case entity.FieldTypeText:
		if valStr != nil {
			return entity.TextValue(*valStr), nil
		}
	case entity.FieldTypeNumber:
		if valNum != nil {
			return entity.NumberValue(*valNum), nil
		}
	case entity.FieldTypeDate:
		if valDate != nil {
			return entity.DateValue(*valDate), nil
		}
	case entity.FieldTypeBoolean:
		if valBool != nil {
			return entity.BoolValue(*valBool), nil
		}
	default:
		return entity.FieldValue{}, fmt.Errorf("tipo de campo desconocido %q", kind)
	}
	return entity.FieldValue{}, fmt.Errorf("valor de campo %s sin columna tipada", kind)
}
