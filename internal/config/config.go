package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// FileNames are the config file names searched for, in order, in each directory
var FileNames = []string{
	"nest-sdk-gen.config.json",
	"nest-sdk-gen.config.yaml",
	"nest-sdk-gen.config.yml",
}

// rootKey is the document key that holds the generator settings
const rootKey = "config"

// ErrNotFound is returned when no config file exists up the directory tree
var ErrNotFound = errors.New("config file not found")

// Config represents the resolved generator configuration.
// It is built once per run and must be treated as read-only afterwards.
type Config struct {
	OutputPath          string         `mapstructure:"outputPath" validate:"required"`
	APIBase             string         `mapstructure:"apiBase"`
	TSConfigFilePath    string         `mapstructure:"tsConfigFilePath"`
	Paths               []string       `mapstructure:"paths" validate:"required,min=1,dive,required"`
	WhiteListDecorators []string       `mapstructure:"whiteListDecorators" validate:"dive,required"`
	ExtraImports        []ImportConfig `mapstructure:"extraImports" validate:"dive"`
	ProvidedIn          string         `mapstructure:"providedIn"`
	UnsupportedParams   string         `mapstructure:"unsupportedParams" validate:"omitempty,oneof=keep drop"`
	ExcludeMethods      []string       `mapstructure:"excludeMethods" validate:"dive,required,glob"`
	SkipDecorator       string         `mapstructure:"skipDecorator"`
	Naming              NamingConfig   `mapstructure:"naming"`
	Encoding            []string       `mapstructure:"encoding" validate:"dive,required"`
	Reports             []string       `mapstructure:"reports" validate:"dive,oneof=excel xlsx word docx html openapi json"`

	// RootDir is the directory of the config file; relative paths resolve against it
	RootDir string `mapstructure:"-"`
	// File is the absolute path of the config file that was loaded
	File string `mapstructure:"-"`
}

// ImportConfig is an extra import added to every generated file
type ImportConfig struct {
	ModuleSpecifier string   `mapstructure:"moduleSpecifier" validate:"required"`
	NamedImports    []string `mapstructure:"namedImports" validate:"required,min=1,dive,required"`
}

// NamingConfig controls generated class and file names
type NamingConfig struct {
	ClassSuffix string `mapstructure:"classSuffix"` // replaces "Controller" in the class name
	FileSuffix  string `mapstructure:"fileSuffix"`  // appended to the kebab-cased class name
}

// Load reads the configuration file and resolves it over the defaults.
// If configPath is empty, the file is searched upward from the working directory.
func Load(configPath string) (Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		found, err := FindUp(wd, FileNames)
		if err != nil {
			return Config{}, fmt.Errorf("could not find %s. You must create one: %w", FileNames[0], err)
		}
		configPath = found
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve config path: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(absPath)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Resolve(Defaults(), v.Sub(rootKey))
	if err != nil {
		return Config{}, err
	}

	cfg.File = absPath
	cfg.RootDir = filepath.Dir(absPath)
	return cfg, nil
}

// FindUp walks from dir towards the filesystem root and returns the first
// existing file among names.
func FindUp(dir string, names []string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Defaults returns a viper instance holding the built-in settings
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults configures the built-in values every key falls back to
func setDefaults(v *viper.Viper) {
	v.SetDefault("outputPath", "")
	v.SetDefault("apiBase", "")
	v.SetDefault("tsConfigFilePath", "tsconfig.json")
	v.SetDefault("paths", []string{})
	v.SetDefault("whiteListDecorators", []string{"Param", "Query", "Body"})
	v.SetDefault("extraImports", []map[string]any{})
	v.SetDefault("providedIn", "")
	v.SetDefault("unsupportedParams", "keep")
	v.SetDefault("excludeMethods", []string{})
	v.SetDefault("skipDecorator", "SkipClient")
	v.SetDefault("naming", map[string]any{
		"classSuffix": "Client",
		"fileSuffix":  ".service",
	})
	v.SetDefault("encoding", []string{"utf-8"})
	v.SetDefault("reports", []string{})
}

// OutputDir returns the absolute directory generated files are written to
func (c *Config) OutputDir() string {
	return c.resolve(c.OutputPath)
}

// TSConfigPath returns the absolute path of the project's tsconfig.json
func (c *Config) TSConfigPath() string {
	return c.resolve(c.TSConfigFilePath)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RootDir, p)
}

// ReportBaseName is the file name, without extension, of generated reports
const ReportBaseName = "nest-sdk-gen-report"

// ReportPath returns the path of a report with the given extension
func (c *Config) ReportPath(ext string) string {
	return filepath.Join(c.OutputDir(), ReportBaseName+ext)
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir(), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// DropUnsupportedParams reports whether parameters whose decorators were all
// stripped by the whitelist are removed from generated signatures.
func (c *Config) DropUnsupportedParams() bool {
	return c.UnsupportedParams == "drop"
}

// IsExcluded checks if Controller.method matches any excludeMethods pattern.
// A pattern without a dot matches the method name alone.
func (c *Config) IsExcluded(controller, method string) bool {
	key := controller + "." + method
	for _, pattern := range c.ExcludeMethods {
		target := key
		if !strings.Contains(pattern, ".") {
			target = method
		}
		if ok, _ := doublestar.Match(pattern, target); ok {
			return true
		}
	}
	return false
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== nest-sdk-gen Configuration ===")
	fmt.Printf("Config File:      %s\n", c.File)
	fmt.Printf("Source Paths:     %v\n", c.Paths)
	fmt.Printf("API Base:         %s\n", c.APIBase)
	fmt.Printf("Whitelist:        %v\n", c.WhiteListDecorators)
	fmt.Printf("Unsupported:      %s\n", c.UnsupportedParams)
	fmt.Printf("Provided In:      %s\n", c.ProvidedIn)
	fmt.Printf("Output Directory: %s\n", c.OutputDir())
	fmt.Printf("Reports:          %v\n", c.Reports)
	fmt.Println("==================================")
}
