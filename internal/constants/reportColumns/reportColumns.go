package reportColumns

// Column names as written by OWASP Dependency-Check. Case-sensitive.
const (
	DependencyName      = "DependencyName"
	CVSSv3BaseSeverity  = "CVSSv3_BaseSeverity"
	CVSSv2Severity      = "CVSSv2_Severity"
	CVE                 = "CVE"
	VulnerabilityDetail = "Vulnerability"
)

var Required = []string{
	DependencyName,
	CVSSv3BaseSeverity,
	CVSSv2Severity,
	CVE,
	VulnerabilityDetail,
}
