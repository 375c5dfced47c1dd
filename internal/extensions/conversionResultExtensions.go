package extensions

import (
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
)

// MapConversionResults drains results until the channel is closed and splits
// them into converted and failed reports, keeping arrival order.
func MapConversionResults(results <-chan models.ConversionResult) models.RunSummary {
	var converted []models.ConversionResult
	var failed []models.ConversionResult

	for result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		} else {
			converted = append(converted, result)
		}
	}

	return models.RunSummary{
		Converted: converted,
		Failed:    failed,
	}
}
