package linker

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"nest-sdk-gen/internal/analyzer"
	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/logger"
	"nest-sdk-gen/internal/model"
	"nest-sdk-gen/internal/utils"
)

// BaseClientFile is the transport base class written next to the clients
const BaseClientFile = "base-client.ts"

// fixedImports are present in every generated client
var fixedImports = []config.ImportConfig{
	{ModuleSpecifier: "@angular/core", NamedImports: []string{"Injectable"}},
	{ModuleSpecifier: "@angular/common/http", NamedImports: []string{"HttpClient"}},
	{ModuleSpecifier: "./" + strings.TrimSuffix(BaseClientFile, ".ts"), NamedImports: []string{"BaseClient"}},
}

// Linker resolves the types used by generated clients to import declarations
type Linker struct {
	Pool *ClientPool

	rootDir   string
	outputDir string
	extra     []config.ImportConfig
	tsconfig  *analyzer.TSConfig
}

// NewLinker creates a new Linker. tsconfig may be nil.
func NewLinker(pool *ClientPool, cfg *config.Config, tsconfig *analyzer.TSConfig) *Linker {
	return &Linker{
		Pool:      pool,
		rootDir:   cfg.RootDir,
		outputDir: cfg.OutputDir(),
		extra:     cfg.ExtraImports,
		tsconfig:  tsconfig,
	}
}

// Add links a generated file against its controller and registers it in the pool
func (l *Linker) Add(file *model.ClientFile, c *model.Controller) error {
	l.Link(file, c)
	return l.Pool.Add(file)
}

// Link fills file.Imports: the fixed imports, the configured extra imports
// and one import for every type the generated signatures reference.
// It returns the warnings for types that could not be imported.
func (l *Linker) Link(file *model.ClientFile, c *model.Controller) []string {
	set := newImportSet()

	for _, imp := range fixedImports {
		set.addNamed(imp.ModuleSpecifier, imp.NamedImports...)
	}
	if usesObservable(file) {
		set.addNamed("rxjs", "Observable")
	}
	for _, imp := range l.extra {
		set.addNamed(imp.ModuleSpecifier, imp.NamedImports...)
	}

	provided := set.locals()
	var warnings []string

	for _, ident := range referencedTypes(file) {
		if utils.IsBuiltinType(ident) || provided[ident] {
			continue
		}

		if imp, spec, ok := findImport(c.Imports, ident); ok {
			module := l.rewriteModule(imp.Module, c.File)
			switch {
			case imp.Namespace == ident:
				set.addNamespace(module, ident)
			case imp.Default == ident:
				set.addDefault(module, ident)
			default:
				set.addNamed(module, spec.String())
			}
			provided[ident] = true
			continue
		}

		var warning string
		if containsString(c.LocalTypes, ident) {
			warning = "type " + ident + " is declared in " + c.File + " and cannot be imported by " + file.FileName
		} else {
			warning = "type " + ident + " used by " + file.ClassName + " is not imported in " + c.File
		}
		logger.Warn("%s", warning)
		warnings = append(warnings, warning)
		provided[ident] = true
	}

	file.Imports = set.declarations()
	return warnings
}

// rewriteModule makes a controller-relative module specifier relative to
// the output directory. Package specifiers are kept.
func (l *Linker) rewriteModule(module, controllerFile string) string {
	var target string
	switch {
	case strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../"):
		target = filepath.Join(l.rootDir, filepath.FromSlash(path.Dir(controllerFile)), filepath.FromSlash(module))
	default:
		resolved, ok := l.tsconfig.ResolveAlias(module)
		if !ok {
			return module
		}
		target = resolved
	}

	rel, err := filepath.Rel(l.outputDir, target)
	if err != nil {
		return module
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") && rel != ".." {
		rel = "./" + rel
	}
	return rel
}

// referencedTypes lists the type identifiers of the generated signatures
func referencedTypes(file *model.ClientFile) []string {
	var types []string
	seen := make(map[string]bool)
	add := func(typeText string) {
		for _, ident := range TypeIdentifiers(typeText) {
			if !seen[ident] {
				seen[ident] = true
				types = append(types, ident)
			}
		}
	}

	for _, m := range file.Methods {
		for _, o := range m.Overloads {
			for _, p := range o.Params {
				add(p.Type)
			}
			add(o.ResponseType)
		}
		for _, p := range m.Params {
			add(p.Type)
		}
		add(m.ResponseType)
	}
	return types
}

func usesObservable(file *model.ClientFile) bool {
	for _, m := range file.Methods {
		if len(m.Overloads) > 0 {
			return true
		}
	}
	return false
}

// findImport finds the import declaration binding ident
func findImport(imports []model.Import, ident string) (model.Import, model.ImportSpecifier, bool) {
	for _, imp := range imports {
		if imp.Default == ident || imp.Namespace == ident {
			return imp, model.ImportSpecifier{}, true
		}
		for _, spec := range imp.Named {
			if spec.Local() == ident {
				return imp, spec, true
			}
		}
	}
	return model.Import{}, model.ImportSpecifier{}, false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// importSet merges import declarations by module
type importSet struct {
	named      map[string]map[string]bool
	defaults   map[string]string
	namespaces map[string]string
}

func newImportSet() *importSet {
	return &importSet{
		named:      make(map[string]map[string]bool),
		defaults:   make(map[string]string),
		namespaces: make(map[string]string),
	}
}

func (s *importSet) addNamed(module string, specs ...string) {
	if s.named[module] == nil {
		s.named[module] = make(map[string]bool)
	}
	for _, spec := range specs {
		s.named[module][spec] = true
	}
}

func (s *importSet) addDefault(module, name string) {
	s.defaults[module] = name
}

func (s *importSet) addNamespace(module, name string) {
	s.namespaces[module] = name
}

// locals returns the identifiers bound so far
func (s *importSet) locals() map[string]bool {
	bound := make(map[string]bool)
	for _, specs := range s.named {
		for spec := range specs {
			fields := strings.Fields(spec)
			bound[fields[len(fields)-1]] = true
		}
	}
	for _, name := range s.defaults {
		bound[name] = true
	}
	for _, name := range s.namespaces {
		bound[name] = true
	}
	return bound
}

// declarations returns the merged imports ordered by module specifier.
// A namespace import cannot share a declaration with named imports and
// follows them.
func (s *importSet) declarations() []model.ImportDecl {
	modules := make(map[string]bool)
	for m := range s.named {
		modules[m] = true
	}
	for m := range s.defaults {
		modules[m] = true
	}
	for m := range s.namespaces {
		modules[m] = true
	}

	ordered := make([]string, 0, len(modules))
	for m := range modules {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		li, lj := strings.ToLower(ordered[i]), strings.ToLower(ordered[j])
		if li != lj {
			return li < lj
		}
		return ordered[i] < ordered[j]
	})

	var decls []model.ImportDecl
	for _, module := range ordered {
		if names := s.named[module]; len(names) > 0 || s.defaults[module] != "" {
			decl := model.ImportDecl{Module: module, Default: s.defaults[module]}
			for name := range names {
				decl.Named = append(decl.Named, name)
			}
			sort.Strings(decl.Named)
			decls = append(decls, decl)
		}
		if ns := s.namespaces[module]; ns != "" {
			decls = append(decls, model.ImportDecl{Module: module, Namespace: ns})
		}
	}
	return decls
}
