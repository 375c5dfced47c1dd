package reportFormats

const (
	Csv  = ".csv"
	Xlsx = ".xlsx"
	Docx = ".docx"
)

var SupportedInputs = []string{Csv, Xlsx}
