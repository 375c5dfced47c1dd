package models

type OutputDocument struct {
	Title   string
	Headers []string
	Rows    []TableRow
}
