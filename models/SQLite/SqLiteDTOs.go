package models
// DataTypes for better working with SQLite.
import (
	"database/sql"

	"database/sql/driver"
)

// NInt64 represents a nullable int64 (null is represented by a Value of 0)
type NInt64 int64

// Scan implements the Scanner interface.
func (n *NInt64) Scan(val interface{}) (err error) {
	nn := sql.NullInt64{}
	err = nn.Scan(val)
	if !nn.Valid {
		*n = 0
	} else {
		*n = NInt64(nn.Int64)
	}
	return
}

// Value implements driver.Valuer interface
func (n NInt64) Value() (v driver.Value, err error) {
	return int64(n), nil
}

// NFloat64 represents a nullable float64 (null is represented by a Value of 0)
type NFloat64 float64

// Scan implements the Scanner interface.
func (n *NFloat64) Scan(val interface{}) (err error) {
	nn := sql.NullFloat64{}
	err = nn.Scan(val)
	if !nn.Valid {
		*n = 0
	} else {
		*n = NFloat64(nn.Float64)
	}
	return
}

// Value implements driver.Valuer interface
func (n NFloat64) Value() (v driver.Value, err error) {
	return float64(n), nil
}

// NString represents a nullable string (null is represented by a Value of "")
type NString string

// Scan implements the Scanner interface!
func (n *NString) Scan(val interface{}) (err error) {

	nn := sql.NullString{}
	err = nn.Scan(val)
	if !nn.Valid {
		*n = ""
	} else {
		*n = NString(nn.String)
	}
	return
}

// Value implements driver.Valuer interface

func (n NString) Value() (v driver.Value, err error) {
	return string(n), nil
}

// NBool represents a nullable bool stored as INTEGER (null is represented by a Value of false)
type NBool bool

// Scan implements the Scanner interface.
func (n *NBool) Scan(val interface{}) (err error) {
	nn := sql.NullBool{}
	err = nn.Scan(val)
	if !nn.Valid {
		*n = false
	} else {
		*n = NBool(nn.Bool)
	}
	return
}

// Value implements driver.Valuer interface
func (n NBool) Value() (v driver.Value, err error) {
	return bool(n), nil
}
