package documentexportservice

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RobsonDevCode/depcheckdocx/internal/models"
	"github.com/fumiama/go-docx"
)

const (
	headerShadeColor = "D9D9D9"
)

type DocumentExportService interface {
	Export(document models.OutputDocument, path string) error
}

type DocumentExporter struct{}

func NewDocumentExporter() *DocumentExporter {
	return &DocumentExporter{}
}

// Export renders the document in memory and then writes it in one go through a
// temporary file, so path either holds the complete document or is left untouched.
func (e *DocumentExporter) Export(document models.OutputDocument, path string) error {
	file, err := Build(document)
	if err != nil {
		return fmt.Errorf("%w: error building %s, %w", models.ErrOutputWrite, path, err)
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: error rendering %s, %w", models.ErrOutputWrite, path, err)
	}

	if err := writeAtomically(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", models.ErrOutputWrite, err)
	}

	return nil
}

// Build lays out the heading, a page break and the vulnerability table.
func Build(document models.OutputDocument) (*docx.Docx, error) {
	theme, err := newReportTheme()
	if err != nil {
		return nil, err
	}
	file := docx.New().UseTemplate(themeName, docx.DefaultTemplateFilesList, theme)

	preserveSpaces(file.AddParagraph().Style(headingStyle).AddText(document.Title))
	file.AddParagraph().AddPageBreaks()

	table := file.AddTable(len(document.Rows)+1, len(document.Headers), 0, nil)
	for i, header := range document.Headers {
		cell := table.TableRows[0].TableCells[i].Shade("clear", "auto", headerShadeColor)
		preserveSpaces(cell.AddParagraph().AddText(header).Bold())
	}

	for i, row := range document.Rows {
		tableRow := table.TableRows[i+1] // skip headers
		for j, value := range row.Cells() {
			if j >= len(tableRow.TableCells) {
				break
			}
			preserveSpaces(tableRow.TableCells[j].AddParagraph().AddText(value))
		}
	}

	return file, nil
}

// values are copied verbatim, leading and trailing blanks included
func preserveSpaces(run *docx.Run) {
	for _, child := range run.Children {
		if text, ok := child.(*docx.Text); ok {
			text.XMLSpace = "preserve"
		}
	}
}

func writeAtomically(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file in %s, %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanUp := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanUp()
		return fmt.Errorf("error writing %s, %w", tmpName, err)
	}

	if err := tmp.Chmod(0644); err != nil {
		cleanUp()
		return fmt.Errorf("error setting permissions on %s, %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing %s, %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to save document to %s, %w", path, err)
	}

	return nil
}
