package reportselectionservice

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
)

type ReportSelectionService interface {
	Select(reports []models.ReportFile) ([]models.ReportFile, error)
}

type askFunc func(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error

type ReportSelection struct {
	ask askFunc
}

func NewReportSelection() *ReportSelection {
	return &ReportSelection{ask: survey.AskOne}
}

// Select asks which of the discovered reports should be converted. All reports
// are ticked by default.
func (s *ReportSelection) Select(reports []models.ReportFile) ([]models.ReportFile, error) {
	if len(reports) == 0 {
		return nil, nil
	}

	options := make([]string, 0, len(reports))
	for _, report := range reports {
		options = append(options, report.Path)
	}

	prompt := &survey.MultiSelect{
		Message:  "Select the reports to convert:",
		Options:  options,
		Default:  options,
		PageSize: 15,
	}

	var selectedIndexes []int
	if err := s.ask(prompt, &selectedIndexes); err != nil {
		return nil, fmt.Errorf("report selection cancelled: %w", err)
	}

	selected := make([]models.ReportFile, 0, len(selectedIndexes))
	for _, index := range selectedIndexes {
		if index < 0 || index >= len(reports) {
			return nil, fmt.Errorf("selected report %d is out of range", index)
		}
		selected = append(selected, reports[index])
	}

	return selected, nil
}
