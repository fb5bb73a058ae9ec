// Package normalize holds the pure cell- and vocabulary-normalization
// functions of the import pipeline. Every function here is total: malformed
// input degrades to a defined value, never an error.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the canonical timestamp representation stored for
// date/time-typed cells.
const TimestampLayout = "2006-01-02 15:04:05"

// String converts an arbitrary cell value to its trimmed string form.
// Absent values become the empty string.
func String(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case time.Time:
		return value.Format(TimestampLayout)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}

// dateLayouts are the representations date cells show up in once a workbook
// has passed through the spreadsheet tooling: ISO forms from exports, the
// short US form excelize renders for date-styled numbers, and the
// datetime-local form the dashboard posts.
var dateLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"01/02/2006 15:04:05",
}

// DateTime converts a cell value to the canonical timestamp string. Values
// that are not dates (and strings in no known date layout) pass through as
// their trimmed string form; absent values become the empty string.
func DateTime(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case time.Time:
		return value.Format(TimestampLayout)
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return ""
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t.Format(TimestampLayout)
			}
		}
		return trimmed
	default:
		return String(v)
	}
}

// gmudStatusOverrides maps the emoji glyphs and typo variants that show up
// in the hand-maintained status column to canonical labels.
var gmudStatusOverrides = map[string]string{
	"✅":             "ENCERRADA",
	"\U0001F504":         "REPLANEJAR",
	"\U0001F504\U0001F4C5": "REPLANEJAR",
	"\U0001F6AB":         "CANCELADA",
	"PROGAMADO":          "PROGRAMADA",
	"AVALIAR\U0001F4C5":  "AVALIAR",
	"NOVO\U0001F4C5":     "NOVO",
	"AUTORIZAR\U0001F4C5": "AUTORIZAR",
	"re":                 "REPLANEJAR",
	"CANCELAR":           "CANCELADA",
}

// GmudStatus normalizes a change-ticket status token. Blank input means a
// new ticket. Unknown non-empty tokens pass through unchanged: the
// vocabulary is open with known overrides, not a closed enum.
func GmudStatus(status string) string {
	s := strings.TrimSpace(status)
	if s == "" {
		return "NOVO"
	}
	if mapped, ok := gmudStatusOverrides[s]; ok {
		return mapped
	}
	if strings.HasPrefix(strings.ToLower(s), "freezin") {
		return "FREEZING"
	}
	return s
}

// CmdbStatus normalizes a CMDB lifecycle status. Blank stays blank; the
// discontinued variants are unified; everything else keeps its original
// casing.
func CmdbStatus(status string) string {
	s := strings.TrimSpace(status)
	if s == "" {
		return ""
	}
	low := strings.ToLower(s)
	switch {
	case low == "sendo descontinuado":
		return "Sendo Descontinuado"
	case strings.HasPrefix(low, "descontinuado"):
		return "Descontinuado"
	case strings.HasPrefix(low, "stopped"):
		return "Descontinuado"
	}
	return s
}

// dbTypeExclusions are tokens that sometimes land in the database-type
// column but are not products. Mapping to "" signals the row is not a
// database and must be dropped by the extractor.
var dbTypeExclusions = map[string]struct{}{
	"sim": {}, "não": {}, "nao": {}, "no": {}, "yes": {}, "n/a": {}, "-": {},
}

var dbTypeCanonical = map[string]string{
	"oracle":                       "Oracle",
	"futuramente oracle":           "Oracle",
	"golden gate(necessário stop)": "Oracle",
	"mongodb":                      "MongoDB",
	"mongodb (read)":               "MongoDB",
	"mongodb (s)":                  "MongoDB",
	"mongodb (p)":                  "MongoDB",
	"mongo":                        "MongoDB",
	"sql server":                   "SQL Server",
	"sqlserver":                    "SQL Server",
	"mysql":                        "MySQL",
	"mariadb":                      "MariaDB",
	"postgres":                     "PostgreSQL",
	"postgresql":                   "PostgreSQL",
	"sybase":                       "Sybase",
	"sqlite3":                      "SQLite",
}

// DBType maps the many vendor spelling variants to one canonical product
// label. Excluded non-product tokens map to the empty string; unrecognized
// tokens keep their original casing.
func DBType(dbType string) string {
	low := strings.ToLower(strings.TrimSpace(dbType))
	if _, excluded := dbTypeExclusions[low]; excluded {
		return ""
	}
	if canonical, ok := dbTypeCanonical[low]; ok {
		return canonical
	}
	return strings.TrimSpace(dbType)
}
