package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nest-sdk-gen/internal/analyzer"
	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/exporter"
	"nest-sdk-gen/internal/generator"
	"nest-sdk-gen/internal/logger"
	"nest-sdk-gen/internal/model"
	"nest-sdk-gen/internal/ui"
)

const (
	appName    = "nest-sdk-gen"
	appVersion = "1.0.0"
	appDesc    = "Generates typed Angular HTTP clients from NestJS controllers"
)

var (
	configPath      string
	verbose         bool
	showVersion     bool
	outputDir       string
	reports         string
	descriptorsPath string
	dumpPath        string
	templatePath    string
	noProgress      bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to configuration file (searched upward from the working directory if empty)")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&outputDir, "output", "", "Override outputPath from config")
	flag.StringVar(&reports, "report", "", "Comma-separated report formats overriding config (excel,word,html,openapi)")
	flag.StringVar(&descriptorsPath, "descriptors", "", "Read controller descriptors from a YAML file instead of parsing sources")
	flag.StringVar(&dumpPath, "dump", "", "Write the parsed controller descriptors to a YAML file")
	flag.StringVar(&templatePath, "template", "", "Custom .docx template for the word report")
	flag.BoolVar(&noProgress, "no-progress", false, "Disable progress bars")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
			os.Exit(1)
		}
	}()

	os.Exit(run())
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	logger.InitConsole(os.Stdout, verbose)
	defer logger.Close()

	cfg, err := config.Load(configPath)
	if err != nil {
		var valErr *config.ValidationError
		if errors.As(err, &valErr) {
			logger.Error("Invalid configuration:")
			for _, issue := range valErr.Issues {
				logger.Error("  %s", issue)
			}
		} else {
			logger.Error("Failed to load configuration: %v", err)
		}
		return 1
	}

	if outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			logger.Error("Invalid -output: %v", err)
			return 1
		}
		cfg.OutputPath = abs
	}
	if reports != "" {
		cfg.Reports = splitList(reports)
	}
	if verbose {
		cfg.Print()
	}

	if err := runGeneration(&cfg); err != nil {
		logger.Error("Generation failed: %v", err)
		return 1
	}
	return 0
}

func runGeneration(cfg *config.Config) error {
	pipeline := ui.NewPipeline()
	if noProgress || verbose {
		pipeline.Disable()
	}
	defer pipeline.Finish()

	controllers, err := loadControllers(cfg, pipeline)
	if err != nil {
		return err
	}
	logger.Info("Found %d controllers", len(controllers))

	tsconfig, err := loadTSConfig(cfg)
	if err != nil {
		return err
	}

	genBar := pipeline.Start(ui.PhaseGenerating, 1)
	result, err := generator.Generate(cfg, controllers, tsconfig)
	if err != nil {
		return err
	}
	genBar.Increment()

	// Everything is rendered; from here on the run writes to disk
	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	if err := logger.AttachFile(filepath.Join(cfg.OutputDir(), logger.FileName)); err != nil {
		return err
	}

	writeBar := pipeline.Start(ui.PhaseWriting, len(result.Artifacts))
	sink := &progressSink{Sink: generator.NewFilesystemSink(cfg.OutputDir()), bar: writeBar}
	if err := generator.Write(sink, result.Artifacts); err != nil {
		return err
	}

	if dumpPath != "" {
		if err := model.WriteDescriptors(dumpPath, controllers); err != nil {
			return err
		}
		logger.Info("Descriptors written to %s", dumpPath)
	}

	if err := runReports(cfg, result, pipeline); err != nil {
		return err
	}
	pipeline.Finish()

	for _, w := range result.Warnings {
		logger.Debug("warning: %s", w)
	}
	logger.Info("✅ Generated %d clients (%d methods, %d skipped) in %s",
		result.Summary.TotalControllers, result.Summary.TotalRoutes, result.Summary.TotalSkipped, cfg.OutputDir())
	if len(result.Warnings) > 0 {
		logger.Info("%d warnings, see %s", len(result.Warnings), logger.GetLogFilePath())
	}
	return nil
}

// loadControllers parses the configured sources, or reads -descriptors
func loadControllers(cfg *config.Config, pipeline *ui.Pipeline) ([]model.Controller, error) {
	if descriptorsPath != "" {
		logger.Info("Reading descriptors from %s", descriptorsPath)
		return model.LoadDescriptors(descriptorsPath)
	}

	a := analyzer.New(cfg)

	scanBar := pipeline.Start(ui.PhaseScanning, 1)
	files, err := a.Scan()
	if err != nil {
		return nil, err
	}
	scanBar.Increment()
	if len(files) == 0 {
		logger.Warn("No source files match %v", cfg.Paths)
	}

	parseBar := pipeline.Start(ui.PhaseParsing, len(files))
	a.OnFile = func(path string) {
		parseBar.Describe(path)
		parseBar.Increment()
	}
	return a.Parse(files)
}

// loadTSConfig reads the project's tsconfig.json for path aliases.
// A missing file is not an error.
func loadTSConfig(cfg *config.Config) (*analyzer.TSConfig, error) {
	path := cfg.TSConfigPath()
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("No tsconfig at %s, path aliases are not resolved", path)
		return nil, nil
	}
	return analyzer.ReadTSConfig(path)
}

func runReports(cfg *config.Config, result *generator.Result, pipeline *ui.Pipeline) error {
	exporters := exporter.GetExporters(cfg.Reports, templatePath)
	if len(exporters) == 0 {
		return nil
	}

	bar := pipeline.Start(ui.PhaseReporting, len(exporters))
	var failed int
	for _, exp := range exporters {
		if err := exp.Export(result.Summary, result.Files, cfg); err != nil {
			logger.Error("Report failed: %v", err)
			failed++
		}
		bar.Increment()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed", failed, len(exporters))
	}
	return nil
}

// progressSink advances the Writing bar for every file written
type progressSink struct {
	generator.Sink
	bar *ui.ProgressBar
}

func (s *progressSink) WriteFile(path string, content []byte) error {
	s.bar.Describe(path)
	err := s.Sink.WriteFile(path, content)
	s.bar.Increment()
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
