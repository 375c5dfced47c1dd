package scannerService

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/RobsonDevCode/depcheckdocx/internal/models"
)

type ReportScannerService interface {
	IsSuitableReport(path string) bool
	Walk(ctx context.Context, root string, fn func(report models.ReportFile) error) error
}

type ReportScanner struct {
	extensions []string
}

func NewReportScanner(extensions []string) *ReportScanner {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		normalized = append(normalized, strings.ToLower(ext))
	}

	return &ReportScanner{
		extensions: normalized,
	}
}

// More checks than the extension can be added here.
func (s *ReportScanner) IsSuitableReport(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	return extension != "" && slices.Contains(s.extensions, extension)
}

// Walk visits every regular file below root and hands it to fn already classified.
// Order follows the filesystem enumeration. An error from fn stops the walk.
func (s *ReportScanner) Walk(ctx context.Context, root string, fn func(report models.ReportFile) error) error {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", models.ErrInputRootMissing, root)
	}
	if err != nil {
		return fmt.Errorf("error reading input directory %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", models.ErrInputRootMissing, root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("error resolving input directory %s: %w", root, err)
	}

	return filepath.WalkDir(absRoot, func(path string, dir fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking dir: %w", err)
		}

		if dir.IsDir() {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("walk has been cancelled, %w", ctx.Err())
		default:
		}

		return fn(models.ReportFile{
			Path:      path,
			Name:      dir.Name(),
			Extension: strings.ToLower(filepath.Ext(path)),
			Suitable:  s.IsSuitableReport(path),
		})
	})
}
