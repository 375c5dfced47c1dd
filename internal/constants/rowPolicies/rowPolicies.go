package rowPolicies

const (
	// FailReport discards the whole report when a row is missing a required field.
	FailReport = "fail-report"
	// SkipRow drops only the offending row and keeps converting.
	SkipRow = "skip-row"
)

var Options = []string{FailReport, SkipRow}
