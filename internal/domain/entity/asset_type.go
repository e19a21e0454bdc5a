package entity

import "time"

// Tipos de dato de los campos dinámicos de un tipo de activo.
const (
	FieldTypeString  = "STRING"
	FieldTypeNumber  = "NUMBER"
	FieldTypeDate    = "DATE"
	FieldTypeText    = "TEXT"
	FieldTypeBoolean = "BOOLEAN"
)

// ValidFieldType indica si dataType es uno de los tipos declarables.
func ValidFieldType(dataType string) bool {
	switch dataType {
	case FieldTypeString, FieldTypeNumber, FieldTypeDate, FieldTypeText, FieldTypeBoolean:
		return true
	}
	return false
}

// AssetType es una categoría de activos con esquema de campos definido por el usuario.
type AssetType struct {
	ID        string
	Name      string // único (comparación exacta, sensible a mayúsculas)
	IsActive  bool
	CreatedBy string // UserID
	CreatedAt time.Time
	Fields    []AssetTypeField // ordenados por SortOrder
}

// AssetTypeField define un campo dinámico de un tipo de activo.
// Inmutable una vez creado: no existe operación de edición ni borrado.
type AssetTypeField struct {
	ID              string
	AssetTypeID     string
	FieldKey        string // identificador máquina, único por tipo
	FieldLabel      string // nombre visible
	DataType        string // STRING | NUMBER | DATE | TEXT | BOOLEAN
	IsRequired      bool
	IsUniquePerType bool
	SortOrder       int
	CreatedAt       time.Time
}
