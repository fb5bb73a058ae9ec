package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func grid(name string, rows ...[]any) Grid {
	header := make([]any, 20)
	return Grid{Name: name, Rows: append([][]any{header}, rows...)}
}

func TestDetectLayout(t *testing.T) {
	classic := make([]any, 13)
	for i := range classic {
		classic[i] = "x"
	}
	require.Equal(t, LayoutClassic, DetectLayout(classic))

	// Wider row but nothing in the extended range stays classic.
	wide := make([]any, 18)
	for i := 0; i < 13; i++ {
		wide[i] = "x"
	}
	require.Equal(t, LayoutClassic, DetectLayout(wide))

	// Any populated cell in 13-17 flips to extended.
	extended := make([]any, 18)
	extended[0] = "Getnet"
	extended[15] = "2025-07-02 21:00:00"
	require.Equal(t, LayoutExtended, DetectLayout(extended))
}

func TestExtractServers(t *testing.T) {
	g := grid(SheetServers,
		[]any{"PROD", "db01(G)", "", "19.27", "", "", "", "", "", "", "", "", "", ""},
		[]any{"PROD", "db02", "db02-sb", "19.29", "", "", "", "", "", "", "", "", "", ""},
		[]any{"HML", "db03", "N/A", "Descontinuado", "", "", "", "", "", "", "", "", "", ""},
		[]any{nil, nil, nil, nil, nil},
	)

	servers := ExtractServers(g)
	require.Len(t, servers, 3)

	require.Equal(t, 1, servers[0].TotalServers)
	require.False(t, servers[0].HasStandby)
	require.True(t, servers[0].HasGGS)

	require.Equal(t, 2, servers[1].TotalServers)
	require.True(t, servers[1].HasStandby)
	require.False(t, servers[1].HasGGS)

	// "N/A" standby is a placeholder, and a status word leaked into the
	// version column is blanked.
	require.Equal(t, 1, servers[2].TotalServers)
	require.False(t, servers[2].HasStandby)
	require.Equal(t, "", servers[2].PSUVersion)

	require.Equal(t, 4, TotalMachines(servers))
}

func TestExtractGmudsClassicAndExtended(t *testing.T) {
	start := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 10, 10, 0, 0, 0, time.UTC)

	g := grid("FEVEREIRO-25",
		[]any{"Getnet", "Oracle", "PROD", "✅", "Monday", start, end, "CHG001", "Title X", "Alice", "note", "QID-1", "Bob"},
		[]any{"Getnet", "Oracle", "HML", "PROGAMADO", "Tuesday", start, end, "CHG002", "Title Y", "Carol", "", "3", "5", "OK", "yes", start, end, "CHG099"},
		[]any{nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
	)

	gmuds := ExtractGmuds(g, 2025, 2)
	require.Len(t, gmuds, 2)

	first := gmuds[0]
	require.Equal(t, 2025, first.Year)
	require.Equal(t, 2, first.Month)
	require.Equal(t, "ENCERRADA", first.Status)
	require.Equal(t, "2025-02-10 08:00:00", first.StartDate)
	require.Equal(t, "QID-1", first.Vulnerability)
	require.Equal(t, "Bob", first.OpenedBy)
	require.Equal(t, "", first.VulnerabilityBefore)

	second := gmuds[1]
	require.Equal(t, "PROGRAMADA", second.Status)
	require.Equal(t, "3", second.VulnerabilityBefore)
	require.Equal(t, "5", second.VulnerabilityAfter)
	require.Equal(t, "OK", second.ClosingCode)
	require.Equal(t, "CHG099", second.NewGmud)
	require.Equal(t, "", second.Vulnerability)
	require.Equal(t, "", second.OpenedBy)
}

func TestExtractCmdbFullFiltersNonDatabaseRows(t *testing.T) {
	row := func(dbType string) []any {
		r := make([]any, 56)
		r[colFullHostname] = "srv-01"
		r[colFullDBType] = dbType
		r[colFullGetStatus] = "descontinuado - REQ42"
		r[colFullGetEnv] = "PROD"
		return r
	}

	g := grid(SheetCmdbFullGetnet, row(""), row("Sim"), row("SQLSERVER"))
	records := ExtractCmdbFullGetnet(g)
	require.Len(t, records, 1)
	require.Equal(t, "SQL Server", records[0].DBType)
	require.Equal(t, "GetNet", records[0].Client)
	require.Equal(t, "Descontinuado", records[0].Status)
	require.Equal(t, SheetCmdbFullGetnet, records[0].SourceSheet)
}

func TestExtractCmdbFullLatamZoneCountry(t *testing.T) {
	r := make([]any, 58)
	r[colFullHostname] = "lat-db-01"
	r[colFullDBType] = "postgres"
	r[colFullLatZone] = "Zona A"
	r[colFullLatCountry] = "Brasil"
	r[colFullLatEnv] = "PROD"

	records := ExtractCmdbFullLatam(grid(SheetCmdbFullLatam, r))
	require.Len(t, records, 1)
	require.Equal(t, "PagoNxt", records[0].Client)
	require.Equal(t, "PostgreSQL", records[0].DBType)
	require.Equal(t, "Zona A", records[0].Zone)
	require.Equal(t, "Brasil", records[0].Country)
	require.Equal(t, "PROD", records[0].Environment)
}

func TestExtractQualysSkipRules(t *testing.T) {
	row := func(asset, qid string) []any {
		r := make([]any, 20)
		r[colQGetAsset] = asset
		r[colQGetTitle] = "Oracle Database vulnerability"
		r[colQGetQID] = qid
		r[colQGetAge] = "12"
		return r
	}

	g := grid(SheetQualysGetnet,
		row("db01", "12345"),
		row("#N/D", "12346"), // lookup error sentinel
		row("", "12347"),     // empty asset
		row("db02", "abc"),   // non-numeric finding id
		row("db03", "0"),     // zero finding id
	)

	records := ExtractQualysGetnet(g)
	require.Len(t, records, 1)
	require.Equal(t, int64(12345), records[0].Vulnerability.QID)
	require.Equal(t, "db01", records[0].Detection.AssetName)
	require.Equal(t, 12, records[0].Detection.DetectionAge)
	require.Equal(t, "GetNet", records[0].Detection.Source)
}

func TestExtractQualysPagonxtKeepsLookupMarker(t *testing.T) {
	r := make([]any, 18)
	r[colQPagoAsset] = "#N/D" // a literal value, not an error, in this format
	r[colQPagoQID] = "777"
	records := ExtractQualysPagonxt(grid(SheetQualysPagonxt, r))
	require.Len(t, records, 1)
	require.Equal(t, "PagoNxt", records[0].Detection.Source)
}

func TestRowOccupiedProbe(t *testing.T) {
	require.False(t, rowOccupied([]any{nil, "", "  ", nil, ""}, 5))
	require.True(t, rowOccupied([]any{"", "", "", "", "x"}, 5))
	// A value past the probe prefix does not make the row occupied.
	require.False(t, rowOccupied([]any{"", "", "", "", "", "late"}, 5))
}
