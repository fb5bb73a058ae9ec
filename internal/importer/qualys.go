package importer

import (
	"strconv"

	"oraex/internal/models"
)

// ScanRecord pairs the catalog candidate and the per-asset detection one
// scan row yields. The loader upserts the vulnerability (first writer wins)
// and always appends the detection.
type ScanRecord struct {
	Vulnerability models.Vulnerability
	Detection     models.Detection
}

// lookupErrorMarker is what a failed spreadsheet VLOOKUP leaves in the
// GetNet export's asset column.
const lookupErrorMarker = "#N/D"

type qualysOffsets struct {
	asset, title, results, age, first int
	env, os, osVer, severity, last    int
	ip, solution, qid, overdue        int
}

var pagonxtScan = qualysOffsets{
	asset: colQPagoAsset, title: colQPagoTitle, results: colQPagoResults, age: colQPagoAge, first: colQPagoFirst,
	env: colQPagoEnv, os: colQPagoOS, osVer: colQPagoOSVer, severity: colQPagoSeverity, last: colQPagoLast,
	ip: colQPagoIP, solution: colQPagoSolution, qid: colQPagoQID, overdue: colQPagoOverdue,
}

var getnetScan = qualysOffsets{
	asset: colQGetAsset, title: colQGetTitle, results: colQGetResults, age: colQGetAge, first: colQGetFirst,
	env: colQGetEnv, os: colQGetOS, osVer: colQGetOSVer, severity: colQGetSeverity, last: colQGetLast,
	ip: colQGetIP, solution: colQGetSolution, qid: colQGetQID, overdue: colQGetOverdue,
}

// ExtractQualysPagonxt maps the PagoNxt scan export.
func ExtractQualysPagonxt(g Grid) []ScanRecord {
	return extractQualys(g, "PagoNxt", pagonxtScan, false)
}

// ExtractQualysGetnet maps the GetNet scan export, which is shifted one
// column right by a leading lookup column and may carry "#N/D" asset names
// where the lookup found nothing.
func ExtractQualysGetnet(g Grid) []ScanRecord {
	return extractQualys(g, "GetNet", getnetScan, true)
}

func extractQualys(g Grid, source string, off qualysOffsets, skipLookupErrors bool) []ScanRecord {
	var out []ScanRecord
	for _, row := range g.DataRows() {
		asset := str(row, off.asset)
		if asset == "" || asset == "Asset Name" {
			continue
		}
		if skipLookupErrors && asset == lookupErrorMarker {
			continue
		}

		qid, err := strconv.ParseInt(str(row, off.qid), 10, 64)
		if err != nil || qid == 0 {
			continue
		}

		// Ages arrive as integers or as excel float renderings ("42.0").
		age := 0
		if parsed, err := strconv.ParseFloat(str(row, off.age), 64); err == nil {
			age = int(parsed)
		}

		out = append(out, ScanRecord{
			Vulnerability: models.Vulnerability{
				QID:      qid,
				Title:    str(row, off.title),
				Severity: str(row, off.severity),
				Threat:   str(row, off.results),
				Solution: str(row, off.solution),
				Category: "",
			},
			Detection: models.Detection{
				QID:           qid,
				AssetName:     asset,
				AssetIP:       str(row, off.ip),
				Environment:   str(row, off.env),
				OS:            str(row, off.os),
				OSVersion:     str(row, off.osVer),
				Status:        "Active",
				FirstDetected: date(row, off.first),
				LastDetected:  date(row, off.last),
				DetectionAge:  age,
				Results:       str(row, off.results),
				Overdue:       str(row, off.overdue),
				Source:        source,
			},
		})
	}
	return out
}
