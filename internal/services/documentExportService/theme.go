package documentexportservice

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/fumiama/go-docx"
)

const (
	themeName    = "default"
	stylesPath   = "xml/" + themeName + "/word/styles.xml"
	headingStyle = "Heading1"
)

// The default go-docx theme ships without heading styles. Heading 1 is added so
// the report title shows up in the navigation pane and in a table of contents.
const headingStyleXML = `<w:style w:type="paragraph" w:styleId="` + headingStyle + `">
        <w:name w:val="heading 1"/>
        <w:basedOn w:val="a"/>
        <w:next w:val="a"/>
        <w:uiPriority w:val="9"/>
        <w:qFormat/>
        <w:pPr>
            <w:keepNext/>
            <w:keepLines/>
            <w:spacing w:before="480" w:after="240"/>
            <w:outlineLvl w:val="0"/>
        </w:pPr>
        <w:rPr>
            <w:b/>
            <w:bCs/>
            <w:sz w:val="32"/>
            <w:szCs w:val="32"/>
        </w:rPr>
    </w:style>
</w:styles>`

var reportStyles = sync.OnceValues(func() ([]byte, error) {
	styles, err := docx.TemplateXMLFS.ReadFile(stylesPath)
	if err != nil {
		return nil, fmt.Errorf("error reading document styles, %w", err)
	}

	end := []byte("</w:styles>")
	if !bytes.Contains(styles, end) {
		return nil, errors.New("document styles are missing the closing styles element")
	}

	return bytes.Replace(styles, end, []byte(headingStyleXML), 1), nil
})

// reportTheme serves the embedded go-docx theme with styles.xml swapped for the
// version carrying the heading style.
type reportTheme struct {
	styles []byte
}

func newReportTheme() (reportTheme, error) {
	styles, err := reportStyles()
	if err != nil {
		return reportTheme{}, err
	}
	return reportTheme{styles: styles}, nil
}

func (t reportTheme) Open(name string) (fs.File, error) {
	file, err := docx.TemplateXMLFS.Open(name)
	if err != nil || name != stylesPath {
		return file, err
	}
	return &themeFile{File: file, content: bytes.NewReader(t.styles)}, nil
}

type themeFile struct {
	fs.File
	content *bytes.Reader
}

func (f *themeFile) Read(p []byte) (int, error) {
	return f.content.Read(p)
}
