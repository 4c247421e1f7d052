package twin

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
)

// RowScanner lo cumplen *sql.Rows y *sql.Row.
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanPatient lee una fila de PatientsQuery (id, name, age, ward, is_mdr_known).
// La base la escribe otra aplicación y SQLite no impone tipos, así que age e
// is_mdr_known se normalizan en vez de fallar: una fila rara no tumba la lista.
func ScanPatient(rs RowScanner) (Patient, error) {
	var (
		p    Patient
		name sql.NullString
		ward sql.NullString
		age  ageColumn
		mdr  flagColumn
	)
	if err := rs.Scan(&p.ID, &name, &age, &ward, &mdr); err != nil {
		return Patient{}, err
	}
	p.Name = name.String
	p.Age = age.v
	p.Ward = ward.String
	p.IsMDRKnown = mdr.v
	return p, nil
}

// ageColumn: INTEGER tal cual, REAL truncado, TEXT numérico parseado.
// NULL y cualquier otra cosa quedan en 0.
type ageColumn struct{ v int }

func (a *ageColumn) Scan(src any) error {
	a.v = 0
	switch v := src.(type) {
	case int64:
		a.v = int(v)
	case int32:
		a.v = int(v)
	case float64:
		a.v = truncFloat(v)
	case bool:
		if v {
			a.v = 1
		}
	case string:
		a.v = parseAge(v)
	case []byte:
		a.v = parseAge(string(v))
	}
	return nil
}

func parseAge(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncFloat(f)
	}
	return 0
}

func truncFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(math.Trunc(f))
}

// flagColumn: numérico distinto de 0 es true; TEXT vía strconv.ParseBool
// (más yes/no). NULL y texto no reconocido son false.
type flagColumn struct{ v bool }

func (f *flagColumn) Scan(src any) error {
	f.v = false
	switch v := src.(type) {
	case bool:
		f.v = v
	case int64:
		f.v = v != 0
	case int32:
		f.v = v != 0
	case float64:
		f.v = v != 0 && !math.IsNaN(v)
	case string:
		f.v = parseFlag(v)
	case []byte:
		f.v = parseFlag(string(v))
	}
	return nil
}

func parseFlag(s string) bool {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	switch strings.ToLower(s) {
	case "yes", "y":
		return true
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n != 0
	}
	return false
}
