// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/require"
)

// Document is the readable content of a generated report document.
type Document struct {
	Title      string
	TitleStyle string
	PageBreak  bool
	Tables     int
	Rows       [][]string
}

// ReadDocument parses the .docx at path and returns its heading, whether a page
// break follows it, and the cell text of the first table.
func ReadDocument(t *testing.T, path string) Document {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	info, err := file.Stat()
	require.NoError(t, err)

	parsed, err := docx.Parse(file, info.Size())
	require.NoError(t, err)

	var document Document
	for _, item := range parsed.Document.Body.Items {
		switch value := item.(type) {
		case *docx.Paragraph:
			if document.Title == "" && !document.PageBreak {
				document.Title = value.String()
				if value.Properties != nil && value.Properties.Style != nil {
					document.TitleStyle = value.Properties.Style.Val
				}
			}
			if hasPageBreak(value) {
				document.PageBreak = true
			}
		case *docx.Table:
			document.Tables++
			if document.Tables == 1 {
				document.Rows = tableCells(value)
			}
		}
	}

	return document
}

func hasPageBreak(paragraph *docx.Paragraph) bool {
	for _, child := range paragraph.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, runChild := range run.Children {
			if br, ok := runChild.(*docx.BarterRabbet); ok && br.Type == "page" {
				return true
			}
		}
	}
	return false
}

func tableCells(table *docx.Table) [][]string {
	rows := make([][]string, 0, len(table.TableRows))
	for _, row := range table.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			text := ""
			if len(cell.Paragraphs) > 0 {
				text = cell.Paragraphs[0].String()
			}
			cells = append(cells, text)
		}
		rows = append(rows, cells)
	}
	return rows
}
