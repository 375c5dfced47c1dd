package severityresolverservice

import (
	"log/slog"

	"github.com/RobsonDevCode/depcheckdocx/internal/constants/reportColumns"
	"github.com/RobsonDevCode/depcheckdocx/internal/logging"
	"github.com/RobsonDevCode/depcheckdocx/internal/models"
)

type SeverityResolverService interface {
	Resolve(row models.VulnerabilityRow) (severity string, fellBack bool, err error)
}

type SeverityResolver struct {
	logger *slog.Logger
}

func NewSeverityResolver(logger *slog.Logger) *SeverityResolver {
	return &SeverityResolver{
		logger: logging.OrDefault(logger),
	}
}

// Resolve prefers the CVSSv3 base severity and falls back to CVSSv2 when v3 is
// empty or absent. Values are returned verbatim, an empty v2 included.
func (s *SeverityResolver) Resolve(row models.VulnerabilityRow) (string, bool, error) {
	if v3, ok := row.Get(reportColumns.CVSSv3BaseSeverity); ok && v3 != "" {
		return v3, false, nil
	}

	s.logger.Warn("Found vulnerability with no CVSSv3 severity score, falling back to v2",
		slog.Int("line", row.Line))

	v2, err := row.Require(reportColumns.CVSSv2Severity)
	if err != nil {
		return "", true, err
	}

	return v2, true, nil
}
