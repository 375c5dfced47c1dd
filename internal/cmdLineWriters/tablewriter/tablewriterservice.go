package tablewriterservice

import (
	"fmt"
	"io"
	"strconv"

	"github.com/RobsonDevCode/depcheckdocx/internal/constants/tableHeaders"
	"github.com/RobsonDevCode/depcheckdocx/internal/extensions"
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	maxPathWidth  = 60
	maxErrorWidth = 500
)

// DisplayRunSummary prints the converted and failed report tables followed by the run tally.
func DisplayRunSummary(w io.Writer, summary models.RunSummary) {
	DisplayConvertedTable(w, summary.Converted)
	DisplayFailedTable(w, summary.Failed)

	total := len(summary.Converted) + len(summary.Failed)
	switch {
	case total == 0:
		fmt.Fprint(w, color.YellowString("\n No OWASP reports were converted\n"))
	case summary.HasFailures():
		fmt.Fprint(w, color.RedString("\n Converted %d of %d reports, %d failed\n", len(summary.Converted), total, len(summary.Failed)))
	default:
		fmt.Fprint(w, color.GreenString("\n Converted %d of %d reports\n", len(summary.Converted), total))
	}

	if len(summary.Skipped) > 0 {
		fmt.Fprintf(w, " Skipped %s non report files\n", color.YellowString("%d", len(summary.Skipped)))
	}
}

func DisplayConvertedTable(w io.Writer, converted []models.ConversionResult) {
	if len(converted) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s", color.CyanString("Converted Reports: \n"))
	table := newTable(w, maxPathWidth)
	table.Header(tableHeaders.SummaryTableHeaders)

	for _, result := range converted {
		table.Append([]string{
			extensions.TruncateStringStart(result.Report.Path, maxPathWidth),
			extensions.TruncateStringStart(result.OutputPath, maxPathWidth),
			strconv.Itoa(result.Rows),
			strconv.Itoa(result.Fallbacks),
			strconv.Itoa(result.SkippedRows),
		})
	}

	table.Render()
}

func DisplayFailedTable(w io.Writer, failed []models.ConversionResult) {
	if len(failed) == 0 {
		return
	}

	fmt.Fprintf(w, "%s", color.RedString("\nFailed To Convert Reports: \n"))
	table := newTable(w, maxPathWidth)
	table.Header(tableHeaders.FailedTableHeaders)

	for _, result := range failed {
		table.Append([]string{
			extensions.TruncateStringStart(result.Report.Path, maxPathWidth),
			extensions.TruncateString(result.Err.Error(), maxErrorWidth),
		})
	}

	table.Render()
}

func newTable(w io.Writer, maxWidth int) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting:   tw.CellFormatting{AutoWrap: tw.WrapNormal}, // long errors wrap instead of stretching the table
				Alignment:    tw.CellAlignment{Global: tw.AlignCenter},
				ColMaxWidths: tw.CellWidth{Global: maxWidth},
			},
		}),
	)
}
