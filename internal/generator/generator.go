// Package generator drives one generation run: it synthesizes a client per
// controller, links its imports, renders every artifact in memory and only
// then hands them to a sink.
package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"nest-sdk-gen/internal/analyzer"
	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/exporter/typescript"
	"nest-sdk-gen/internal/linker"
	"nest-sdk-gen/internal/logger"
	"nest-sdk-gen/internal/model"
	"nest-sdk-gen/internal/synth"
)

// Artifact is one rendered output file
type Artifact struct {
	Path    string // relative to the output directory, slash separated
	Content []byte
}

// Result is everything a run produced before anything is written
type Result struct {
	Files     []*model.ClientFile
	Artifacts []Artifact
	Summary   *model.Summary
	Warnings  []string
}

// Generate builds the client files for the given controllers.
// Controllers are processed in lower-cased source path order so the output
// does not depend on discovery order. The first classification error aborts
// the run; tsconfig may be nil.
func Generate(cfg *config.Config, controllers []model.Controller, tsconfig *analyzer.TSConfig) (*Result, error) {
	ordered := make([]*model.Controller, 0, len(controllers))
	for i := range controllers {
		if controllers[i].IsController() {
			ordered = append(ordered, &controllers[i])
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.ToLower(ordered[i].File) < strings.ToLower(ordered[j].File)
	})

	pool := linker.NewClientPool()
	l := linker.NewLinker(pool, cfg, tsconfig)
	result := &Result{}

	for _, c := range ordered {
		file, err := synth.BuildClient(cfg, c)
		if err != nil {
			return nil, err
		}

		result.Warnings = append(result.Warnings, l.Link(file, c)...)
		if err := pool.Add(file); err != nil {
			return nil, err
		}
		logger.Debug("%s -> %s (%d methods, %d skipped)", c.Name, file.FileName, len(file.Methods), len(file.Skipped))
	}

	result.Files = pool.Files()
	result.Artifacts = append(result.Artifacts, Artifact{Path: linker.BaseClientFile, Content: typescript.BaseClient()})
	for _, f := range result.Files {
		result.Artifacts = append(result.Artifacts, Artifact{Path: f.FileName, Content: typescript.Render(f)})
	}

	result.Summary = model.NewSummary(result.Files, cfg.APIBase, time.Now().Format("2006-01-02"))
	return result, nil
}

// Write hands every artifact to the sink, in order
func Write(sink Sink, artifacts []Artifact) error {
	for _, a := range artifacts {
		if err := sink.WriteFile(a.Path, a.Content); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}
		logger.Debug("Wrote %s (%d bytes)", a.Path, len(a.Content))
	}
	return nil
}
