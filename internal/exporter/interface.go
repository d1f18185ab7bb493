package exporter

import (
	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/model"
)

// Exporter is the unified interface for all report formats
type Exporter interface {
	Export(summary *model.Summary, files []*model.ClientFile, cfg *config.Config) error
}
