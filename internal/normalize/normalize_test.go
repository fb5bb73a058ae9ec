package normalize

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStringCoversScalarTypes(t *testing.T) {
	require.Equal(t, "", String(nil))
	require.Equal(t, "db01", String("  db01  "))
	require.Equal(t, "19.29", String("19.29"))
	require.Equal(t, "42", String(float64(42)))
	require.Equal(t, "2025-02-10 08:00:00", String(time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)))
}

func TestDateTimeCanonicalizes(t *testing.T) {
	canonical := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

	out := DateTime(time.Date(2025, 2, 10, 8, 30, 0, 0, time.UTC))
	require.Regexp(t, canonical, out)
	require.Equal(t, "2025-02-10 08:30:00", out)

	require.Equal(t, "", DateTime(nil))
	require.Equal(t, "", DateTime("   "))
	require.Regexp(t, canonical, DateTime("2025-02-10T08:30"))
	require.Regexp(t, canonical, DateTime("2025-02-10"))

	// Non-date text degrades to its trimmed string form, never an error.
	require.Equal(t, "a combinar", DateTime(" a combinar "))
}

func TestGmudStatusOverrides(t *testing.T) {
	require.Equal(t, "ENCERRADA", GmudStatus("✅"))
	require.Equal(t, "REPLANEJAR", GmudStatus("\U0001F504"))
	require.Equal(t, "CANCELADA", GmudStatus("\U0001F6AB"))
	require.Equal(t, "PROGRAMADA", GmudStatus("PROGAMADO"))
	require.Equal(t, "CANCELADA", GmudStatus("CANCELAR"))
	require.Equal(t, "REPLANEJAR", GmudStatus("re"))
	require.Equal(t, "NOVO", GmudStatus(""))
	require.Equal(t, "NOVO", GmudStatus("   "))
	require.Equal(t, "FREEZING", GmudStatus("Freezing até 02/01"))
	require.Equal(t, "FREEZING", GmudStatus("freezin"))
	// Unknown non-empty tokens pass through unchanged.
	require.Equal(t, "EM ANÁLISE", GmudStatus("EM ANÁLISE"))
}

func TestGmudStatusCanonicalFixedPoints(t *testing.T) {
	for _, canonical := range []string{"ENCERRADA", "REPLANEJAR", "CANCELADA", "PROGRAMADA", "AVALIAR", "NOVO", "AUTORIZAR"} {
		require.Equal(t, canonical, GmudStatus(canonical))
	}
}

func TestCmdbStatus(t *testing.T) {
	require.Equal(t, "", CmdbStatus(""))
	require.Equal(t, "Descontinuado", CmdbStatus("descontinuado - REQ123"))
	require.Equal(t, "Descontinuado", CmdbStatus("DESCONTINUADO"))
	require.Equal(t, "Sendo Descontinuado", CmdbStatus("sendo descontinuado"))
	require.Equal(t, "Descontinuado", CmdbStatus("Stopped by request"))
	require.Equal(t, "Ativo", CmdbStatus("Ativo"))
	// Pass-through preserves original casing.
	require.Equal(t, "running", CmdbStatus("running"))
}

func TestDBType(t *testing.T) {
	require.Equal(t, "SQL Server", DBType("SQLSERVER"))
	require.Equal(t, "SQL Server", DBType("sql server"))
	require.Equal(t, "MongoDB", DBType("mongo"))
	require.Equal(t, "MongoDB", DBType("MongoDB (Read)"))
	require.Equal(t, "Oracle", DBType("Futuramente Oracle"))
	require.Equal(t, "Oracle", DBType("golden gate(necessário stop)"))

	// The exclusion set signals "not a database".
	for _, junk := range []string{"Sim", "não", "NAO", "no", "yes", "N/A", "-"} {
		require.Equal(t, "", DBType(junk), "token %q must map to empty", junk)
	}

	// Unrecognized products keep their casing.
	require.Equal(t, "Cassandra", DBType("Cassandra"))
}

func TestClassifyFindingPriorityOrder(t *testing.T) {
	require.Equal(t, "DBA", ClassifyFinding("Oracle Database Critical Patch Update"))
	require.Equal(t, "Middleware", ClassifyFinding("Apache Tomcat Remote Code Execution"))
	require.Equal(t, "Security/Crypto", ClassifyFinding("SSL Certificate Expired"))
	require.Equal(t, "Patch Manager", ClassifyFinding("Microsoft Windows Security Update Missing"))
	require.Equal(t, "OS/Infra", ClassifyFinding("Linux Kernel Information Disclosure"))

	// First rule wins: a DBA keyword beats a crypto keyword in the same title.
	require.Equal(t, "DBA", ClassifyFinding("Oracle TNS Listener SSL weakness"))
}
