package twin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Patient es la fila de la tabla patients que expone la vista del gemelo digital.
// Se lee tal cual del almacenamiento; este servicio nunca la modifica.
type Patient struct {
	ID         PatientID
	Name       string
	Age        int
	Ward       string
	IsMDRKnown bool
}

// PatientID conserva el tipo nativo de la clave externa:
// INTEGER se serializa como número JSON y TEXT como string JSON.
type PatientID struct {
	num   int64
	str   string
	isNum bool
}

var ErrNullPatientID = errors.New("patient id is null")

func IntID(n int64) PatientID     { return PatientID{num: n, isNum: true} }
func StringID(s string) PatientID { return PatientID{str: s} }

// IsInt indica si la clave es numérica.
func (id PatientID) IsInt() bool { return id.isNum }

func (id PatientID) String() string {
	if id.isNum {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// Scan implementa sql.Scanner. SQLite es de tipado dinámico, así que la
// misma columna puede traer int64, float64, string o []byte.
func (id *PatientID) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*id = IntID(v)
	case int32:
		*id = IntID(int64(v))
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return fmt.Errorf("patient id %v is not an integer", v)
		}
		*id = IntID(int64(v))
	case string:
		*id = StringID(v)
	case []byte:
		*id = StringID(string(v))
	case nil:
		return ErrNullPatientID
	default:
		return fmt.Errorf("unsupported patient id type %T", src)
	}
	return nil
}

func (id PatientID) MarshalJSON() ([]byte, error) {
	if id.isNum {
		return []byte(strconv.FormatInt(id.num, 10)), nil
	}
	return json.Marshal(id.str)
}

func (id *PatientID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return ErrNullPatientID
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("patient id %s: %w", string(b), err)
	}
	*id = IntID(n)
	return nil
}
