package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment.
type Config struct {
	Addr string

	// DBDriver selects the store backend: "sqlite" (default) or "postgres".
	DBDriver string
	// DBPath is the sqlite database file. ":memory:" is accepted.
	DBPath string
	// DBDSN is the postgres connection string when DBDriver is "postgres".
	DBDSN string

	// ConsolidationPath is the workbook GMUD rows are appended to.
	ConsolidationPath string
	// BackupDir receives timestamped copies before any workbook write.
	BackupDir string

	SessionTTLHours int
	LogLevel        string
}

// Load reads configuration from the environment, applying defaults. A .env
// file next to the binary is honoured when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:              getenv("ADDR", ":8080"),
		DBDriver:          getenv("DB_DRIVER", "sqlite"),
		DBPath:            getenv("DB_PATH", "oraex.db"),
		DBDSN:             getenv("DB_DSN", ""),
		ConsolidationPath: getenv("CONSOLIDATION_PATH", ""),
		BackupDir:         getenv("BACKUP_DIR", "backups"),
		SessionTTLHours:   12,
		LogLevel:          getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// MonthSheet maps a monthly ticket sheet to its calendar position.
type MonthSheet struct {
	Year  int
	Month int
}

// MonthSheets maps every known monthly GMUD sheet name to (year, month).
// Sheet names follow the spreadsheet's Portuguese month naming and the list
// grows by hand as new months are opened.
var MonthSheets = map[string]MonthSheet{
	"FEVEREIRO-25": {2025, 2},
	"MARÇO-25":     {2025, 3},
	"ABRIL-25":     {2025, 4},
	"MAIO-25":      {2025, 5},
	"JUNHO-25":     {2025, 6},
	"JULHO-25":     {2025, 7},
	"AGOSTO-25":    {2025, 8},
	"SETEMBRO-25":  {2025, 9},
	"OUTUBRO-25":   {2025, 10},
	"NOVEMBRO-25":  {2025, 11},
	"DEZEMBRO-25":  {2025, 12},
	"JANEIRO-26":   {2026, 1},
	"FEVEREIRO-26": {2026, 2},
}

// SheetForMonth is the reverse lookup used when appending a new GMUD row.
func SheetForMonth(year, month int) (string, bool) {
	for name, ms := range MonthSheets {
		if ms.Year == year && ms.Month == month {
			return name, true
		}
	}
	return "", false
}
