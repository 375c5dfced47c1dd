package models

import (
	"path/filepath"
	"strings"
)

type ReportFile struct {
	Path      string
	Name      string
	Extension string
	Suitable  bool
}

// BaseName is the report's file name without its extension.
func (r ReportFile) BaseName() string {
	return strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
}
