package analyzer

import (
	"fmt"
	"path/filepath"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/logger"
	"nest-sdk-gen/internal/model"
	"nest-sdk-gen/internal/tsparser"
)

// Analyzer discovers controller sources and turns them into descriptors
type Analyzer struct {
	rootDir   string
	patterns  []string
	encodings []string

	// OnFile is called after each file is parsed (progress reporting)
	OnFile func(path string)
}

// New creates an Analyzer for the configured source globs
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		rootDir:   cfg.RootDir,
		patterns:  cfg.Paths,
		encodings: cfg.Encoding,
	}
}

// Scan returns the matching source files, relative to the root directory,
// in deterministic order
func (a *Analyzer) Scan() ([]string, error) {
	files, err := ScanPaths(a.rootDir, a.patterns)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scanned %d source files under %s", len(files), a.rootDir)
	return files, nil
}

// Parse reads every file and returns the controllers they declare, in file
// order and then declaration order
func (a *Analyzer) Parse(files []string) ([]model.Controller, error) {
	var controllers []model.Controller

	for _, rel := range files {
		content, err := ReadFile(filepath.Join(a.rootDir, rel), a.encodings)
		if err != nil {
			logger.LogParseError(rel, err, "read")
			return nil, fmt.Errorf("%s: %w", rel, err)
		}

		file, err := tsparser.ParseFile(filepath.ToSlash(rel), content)
		if err != nil {
			logger.LogParseError(rel, err, "parse")
			return nil, fmt.Errorf("%s: %w", rel, err)
		}

		found := file.Controllers()
		if len(found) == 0 {
			logger.Debug("No @Controller class in %s", rel)
		}
		controllers = append(controllers, found...)

		if a.OnFile != nil {
			a.OnFile(rel)
		}
	}

	return controllers, nil
}

// Analyze scans and parses in one step
func (a *Analyzer) Analyze() ([]model.Controller, error) {
	files, err := a.Scan()
	if err != nil {
		return nil, err
	}
	return a.Parse(files)
}
