package tableHeaders

var DocumentTableHeaders = []string{
	"Vulnerable Component",
	"Severity",
	"CVE Identifier",
	"Vulnerability Description",
}

var SummaryTableHeaders = []string{"Report", "Output", "Rows", "V2 Fallbacks", "Skipped Rows"}

var FailedTableHeaders = []string{"Report", "Error"}
