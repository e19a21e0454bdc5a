package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FieldValue es el valor tipado de un campo dinámico: una variante etiquetada
// (String | Number | Date | Text | Bool) en lugar de cinco columnas anulables.
// El adaptador de persistencia la proyecta sobre las columnas tipadas.
type FieldValue struct {
	kind string // FieldTypeString, FieldTypeNumber, ...
	str  string
	num  decimal.Decimal
	date time.Time
	b    bool
}

// Constructores por variante.
func StringValue(s string) FieldValue          { return FieldValue{kind: FieldTypeString, str: s} }
func TextValue(s string) FieldValue            { return FieldValue{kind: FieldTypeText, str: s} }
func NumberValue(d decimal.Decimal) FieldValue { return FieldValue{kind: FieldTypeNumber, num: d} }
func DateValue(t time.Time) FieldValue         { return FieldValue{kind: FieldTypeDate, date: t} }
func BoolValue(b bool) FieldValue              { return FieldValue{kind: FieldTypeBoolean, b: b} }

// Kind devuelve el tipo de la variante (FieldType*).
func (v FieldValue) Kind() string { return v.kind }

// Accesores por variante; válidos solo cuando Kind coincide.
func (v FieldValue) Str() string          { return v.str }
func (v FieldValue) Num() decimal.Decimal { return v.num }
func (v FieldValue) Date() time.Time      { return v.date }
func (v FieldValue) Bool() bool           { return v.b }

// IsZero indica si la variante no fue inicializada.
func (v FieldValue) IsZero() bool { return v.kind == "" }

// Scalar devuelve el valor como tipo nativo para serialización JSON.
func (v FieldValue) Scalar() any {
	switch v.kind {
	case FieldTypeString, FieldTypeText:
		return v.str
	case FieldTypeNumber:
		return v.num
	case FieldTypeDate:
		return v.date.Format("2006-01-02")
	case FieldTypeBoolean:
		return v.b
	}
	return nil
}

// ParseFieldValue coacciona un valor crudo (JSON) al tipo declarado del campo.
// El switch por variante es exhaustivo: un dataType desconocido es un error.
func ParseFieldValue(dataType string, raw any) (FieldValue, error) {
	switch dataType {
	case FieldTypeString:
		return StringValue(coerceString(raw)), nil
	case FieldTypeText:
		return TextValue(coerceString(raw)), nil
	case FieldTypeNumber:
		d, err := coerceNumber(raw)
		if err != nil {
			return FieldValue{}, err
		}
		return NumberValue(d), nil
	case FieldTypeDate:
		t, err := coerceDate(raw)
		if err != nil {
			return FieldValue{}, err
		}
		return DateValue(t), nil
	case FieldTypeBoolean:
		b, err := coerceBool(raw)
		if err != nil {
			return FieldValue{}, err
		}
		return BoolValue(b), nil
	}
	return FieldValue{}, fmt.Errorf("tipo de campo desconocido %q", dataType)
}

func coerceString(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

func coerceNumber(raw any) (decimal.Decimal, error) {
	switch n := raw.(type) {
	case float64: // encoding/json decodifica números como float64
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("valor numérico inválido %q", n)
		}
		return d, nil
	case decimal.Decimal:
		return n, nil
	}
	return decimal.Decimal{}, fmt.Errorf("valor numérico inválido %v", raw)
}

func coerceDate(raw any) (time.Time, error) {
	switch d := raw.(type) {
	case time.Time:
		return d, nil
	case string:
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("fecha inválida %q", d)
	}
	return time.Time{}, fmt.Errorf("fecha inválida %v", raw)
}

func coerceBool(raw any) (bool, error) {
	switch b := raw.(type) {
	case bool:
		return b, nil
	case string:
		v, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("booleano inválido %q", b)
		}
		return v, nil
	}
	return false, fmt.Errorf("booleano inválido %v", raw)
}

// AssetFieldValue asocia el valor de un campo dinámico a un activo.
// Clave compuesta (AssetID, FieldID); nunca se actualiza después de creado.
type AssetFieldValue struct {
	AssetID  string
	FieldID  string
	FieldKey string // denormalizado en lecturas para reconstruir el mapa
	Value    FieldValue
}
