package normalize

import "regexp"

// classificationRule assigns a responsibility label when its pattern
// matches a finding title. Rules are evaluated in order and the first match
// wins, so a title naming both a database product and a TLS issue is a DBA
// finding. The order encodes triage priority, not pattern exclusivity.
type classificationRule struct {
	label   string
	pattern *regexp.Regexp
}

var classificationRules = []classificationRule{
	{"DBA", regexp.MustCompile(`(?i)oracle|mysql|mariadb|postgres|sql\s*server|mongodb|sybase|db2|database`)},
	{"Middleware", regexp.MustCompile(`(?i)weblogic|websphere|tomcat|jboss|wildfly|apache|nginx|middleware|application server`)},
	{"Security/Crypto", regexp.MustCompile(`(?i)\bssl\b|\btls\b|certificate|cipher|cryptograph|openssl`)},
	{"Patch Manager", regexp.MustCompile(`(?i)security update|cumulative update|patch|hotfix|service pack`)},
	{"Development", regexp.MustCompile(`(?i)custom application|in-house|homegrown|desenvolvimento`)},
}

// DefaultClassification is assigned when no rule matches.
const DefaultClassification = "OS/Infra"

// ClassifyFinding derives the responsible team label for a scanner finding
// from its title.
func ClassifyFinding(title string) string {
	for _, rule := range classificationRules {
		if rule.pattern.MatchString(title) {
			return rule.label
		}
	}
	return DefaultClassification
}
