package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// topLevelKeys are the recognized settings; each is overridden as a whole
var topLevelKeys = []string{
	"outputPath",
	"apiBase",
	"tsConfigFilePath",
	"paths",
	"whiteListDecorators",
	"extraImports",
	"providedIn",
	"unsupportedParams",
	"excludeMethods",
	"skipDecorator",
	"naming",
	"encoding",
	"reports",
}

// nestedKeys are the recognized keys below object-valued settings
var nestedKeys = []string{
	"naming.classSuffix",
	"naming.fileSuffix",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field paths with the document's key names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})

	v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})

	return v
}

// Issue is a single schema violation found in the user configuration
type Issue struct {
	Field   string // document path, e.g. "config.outputPath"
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// ValidationError carries every issue found in the user configuration
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, issue.String())
	}
	return "configuration errors: " + strings.Join(lines, "; ")
}

// HasField reports whether any issue refers to the given document path
func (e *ValidationError) HasField(field string) bool {
	for _, issue := range e.Issues {
		if strings.EqualFold(issue.Field, field) {
			return true
		}
	}
	return false
}

// Resolve validates the user settings and merges them over the defaults.
// Validation collects every issue before failing; a partially valid Config
// is never returned. Merging is a shallow override: a key present in user
// replaces the default value as a whole, collections included.
func Resolve(defaults, user *viper.Viper) (Config, error) {
	if user == nil {
		user = viper.New()
	}
	if defaults == nil {
		defaults = Defaults()
	}

	if issues := validateUser(user); len(issues) > 0 {
		return Config{}, &ValidationError{Issues: issues}
	}

	merged := viper.New()
	for _, key := range topLevelKeys {
		switch {
		case user.IsSet(key):
			merged.Set(key, user.Get(key))
		case defaults.IsSet(key):
			merged.Set(key, defaults.Get(key))
		}
	}

	var cfg Config
	if err := merged.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// validateUser checks the raw user document against the schema
func validateUser(user *viper.Viper) []Issue {
	var issues []Issue

	known := make(map[string]bool, len(topLevelKeys)+len(nestedKeys))
	for _, k := range topLevelKeys {
		known[strings.ToLower(k)] = true
	}
	for _, k := range nestedKeys {
		known[strings.ToLower(k)] = true
	}

	keys := user.AllKeys()
	sort.Strings(keys)
	for _, k := range keys {
		if !known[k] {
			issues = append(issues, Issue{Field: rootKey + "." + k, Message: "unknown setting"})
		}
	}

	var raw Config
	if err := user.Unmarshal(&raw); err != nil {
		issues = append(issues, Issue{Field: rootKey, Message: err.Error()})
		return issues
	}

	if err := validate.Struct(raw); err != nil {
		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			issues = append(issues, Issue{Field: rootKey, Message: err.Error()})
			return issues
		}
		for _, fe := range valErrs {
			issues = append(issues, Issue{
				Field:   fieldPath(fe.Namespace()),
				Message: formatValidationError(fe),
			})
		}
	}

	return issues
}

// fieldPath turns "Config.extraImports[0].moduleSpecifier" into
// "config.extraImports[0].moduleSpecifier"
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return rootKey + namespace[i:]
	}
	return rootKey
}

// formatValidationError converts a validator.FieldError to a human-readable message
func formatValidationError(fe validator.FieldError) string {
	unit := "characters"
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must contain at least %s %s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must contain at most %s %s", fe.Param(), unit)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "glob":
		return fmt.Sprintf("invalid glob pattern %q", fe.Value())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
