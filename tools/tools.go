// Package tools provides several helper-functions used in gofuel & gofuel-lib.
package tools

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"database/sql"
	"time"

	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	"github.com/mattn/go-sqlite3"
)

var ErrNoChanges = errors.New("No columns to update")

// MillisPerDay is the length of one day in Millisecond-Unix-Timestamp-units.
const MillisPerDay int64 = 24 * 60 * 60 * 1000

// GetCleanFilePath Checks if a file is in the given dir or a subdir of the given dir. Should prevent injection like "../../etc/profile"
// returns a definitely in the directory filePath and an error if it was not succesful
// modified version of http://golang.org/src/net/http/fs.go?s=719:734#L23 (just skipping opening the file)
func GetCleanFilePath(dirRelativeFPath string, dirPath string) (secureFPath string, err error) {

	if filepath.Separator != '/' && strings.IndexRune(dirRelativeFPath, filepath.Separator) >= 0 ||
		strings.Contains(dirRelativeFPath, "\x00") {
		return "", errors.New("http: invalid character in file path")
	}
	dir := string(dirPath)
	if dir == "" {
		dir = "."
	}
	secureFPath = filepath.Join(dir, filepath.FromSlash(path.Clean("/"+dirRelativeFPath)))
	return
}

// GetDateForFileName gets a date string to be used in a file name, e.g. "2006_01_02"
func GetDateForFileName(timeMillis int64, timeConfig *TimeConfig) string {
	time := GetTimeFromMillis(timeMillis)
	return time.Format(timeConfig.FileTimeFormatString)
}

// GetDateOnlyForText gets a german string-representation of the given timestamp, e.g. "02.01.2006"
func GetDateOnlyForText(timeMillis int64) string {
	t := GetTimeFromMillis(timeMillis)
	return t.Format("02.01.2006")
}

// GetTimeFromMillis converts a Millisecond-Unix-Timestamp to a golang time.Time-object (UTC).
func GetTimeFromMillis(timeMillis int64) time.Time {
	return time.Unix(0, timeMillis*1000*1000).UTC()
}

// GetDateMillis truncates the given time to UTC-midnight and returns it as Millisecond-Unix-Timestamp.
// All ledger dates are stored this way so same-day entries compare equal.
func GetDateMillis(t time.Time) int64 {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.UnixNano() / 1000 / 1000
}

// DaysBetween returns the count of full days between two date-timestamps.
func DaysBetween(fromMillis int64, toMillis int64) int64 {
	return (toMillis - fromMillis) / MillisPerDay
}

// RegisterSqlite registers sqlite3 under name, if it isnt already
func RegisterSqlite(name string) (err error) {
	need_register := true
	for _, b := range sql.Drivers() {
		if b == name {
			need_register = false
		}
	}
	if need_register {
		sql.Register(name, &sqlite3.SQLiteDriver{})
	}
	return
}

// TimeConfig defines how to format time for user output.
type TimeConfig struct {

	// Long time format, contains month and year
	LongTimeFormatString string
	// Short time format, contains only the date
	ShortTimeFormatString string

	// Time format for file names
	FileTimeFormatString string
	TimeLocation         *time.Location
}

// GetDefaultTimeConfig returns the default (italian/german day-first) time configuration.
func GetDefaultTimeConfig() *TimeConfig {
	return &TimeConfig{
		LongTimeFormatString:  "02.01.2006 15:04",
		ShortTimeFormatString: "02.01.2006",
		FileTimeFormatString:  "2006_01_02",
		TimeLocation:          time.UTC,
	}
}

// AppendStringUpdateField appends a string-field to an update-query
func AppendStringUpdateField(fieldName string, fieldVal *string, firstVal *bool, vals *[]interface{}, uFields *string) {
	if *fieldVal == "-" {
		*fieldVal = ""
	}
	Append2UpdateFields(fieldName, *fieldVal, firstVal, vals, uFields)
}

// AppendNStringUpdateField appends a NString-field to an update-query
func AppendNStringUpdateField(fieldName string, fieldVal *S.NString, firstVal *bool, vals *[]interface{}, uFields *string) {
	if *fieldVal == "-" {
		*fieldVal = ""
	}
	Append2UpdateFields(fieldName, fieldVal, firstVal, vals, uFields)
}

// AppendInt64UpdateField appends a int64-field to an update-query
func AppendInt64UpdateField(fieldName string, fieldVal *int64, firstVal *bool, vals *[]interface{}, uFields *string) {
	if *fieldVal == -1337 {
		Append2UpdateFields(fieldName, nil, firstVal, vals, uFields)
	} else if *fieldVal == -1 {
		Append2UpdateFields(fieldName, 0, firstVal, vals, uFields)
	} else {
		Append2UpdateFields(fieldName, fieldVal, firstVal, vals, uFields)
	}

}

// AppendNInt64UpdateField appends a NInt64-field to an update-query
func AppendNInt64UpdateField(fieldName string, fieldVal *S.NInt64, firstVal *bool, vals *[]interface{}, uFields *string) {
	if *fieldVal == -1337 {
		Append2UpdateFields(fieldName, nil, firstVal, vals, uFields)
	} else if *fieldVal == -1 {
		Append2UpdateFields(fieldName, 0, firstVal, vals, uFields)
	} else {
		Append2UpdateFields(fieldName, fieldVal, firstVal, vals, uFields)
	}

}

// AppendNFloat64UpdateField appends a NFloat64-field to an update-query
func AppendNFloat64UpdateField(fieldName string, fieldVal *S.NFloat64, firstVal *bool, vals *[]interface{}, uFields *string) {
	if *fieldVal == -1337.0 {
		Append2UpdateFields(fieldName, nil, firstVal, vals, uFields)
	} else if *fieldVal == -1.0 {
		Append2UpdateFields(fieldName, 0, firstVal, vals, uFields)
	} else {
		Append2UpdateFields(fieldName, fieldVal, firstVal, vals, uFields)
	}

}

// Append2UpdateFields appends a field of an undefined type (interface{}) to an update-query
func Append2UpdateFields(fieldName string, fieldVal interface{}, firstVal *bool, vals *[]interface{}, uFields *string) {
	if *firstVal {
		*firstVal = false
	} else {
		*uFields += ","
	}
	*uFields += fieldName + "=?"
	*vals = append(*vals, fieldVal)
}

// AppendStringsByComma appends val2 to val1, if val 1 and val 2 not empty adds comma.
func AppendStringsByComma(val1 string, val2 string) string {
	if val2 == "" {
		return val1
	}
	if val1 != "" {
		val1 += ","
	} else {
		return val2
	}
	val1 += val2
	return val1
}
