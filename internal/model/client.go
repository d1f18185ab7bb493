package model

// ClientParam is a parameter of a generated client method (decorators removed)
type ClientParam struct {
	Name     string
	Type     string
	Optional bool
}

// ClientSignature is an overload signature of a generated client method
type ClientSignature struct {
	Params       []ClientParam
	ResponseType string
}

// RouteInfo records how a generated method maps to its HTTP route.
// It feeds the reports; the generated code itself lives in Statements.
type RouteInfo struct {
	Verb       string
	Path       string
	PathParams []string
	QueryKeys  []string
	BodyParam  string
}

// ClientMethod is the client-side counterpart of one route handler.
// It is never mutated after creation.
type ClientMethod struct {
	Name         string
	Params       []ClientParam
	Overloads    []ClientSignature
	ResponseType string
	Statements   []string
	Route        RouteInfo
}

// SkippedMethod records a handler that was intentionally not emitted
type SkippedMethod struct {
	Name   string
	Reason string
}

// ImportDecl is an import declaration of a generated file
type ImportDecl struct {
	Module    string
	Default   string
	Namespace string
	Named     []string // rendered specifiers, e.g. "A" or "A as B"
}

// ClientFile is the generated artifact for one controller
type ClientFile struct {
	Controller string // source controller class name
	Source     string // source file of the controller
	ClassName  string
	FileName   string // relative to the output directory
	ProvidedIn string // @Injectable providedIn expression, empty for none
	Imports    []ImportDecl
	Methods    []ClientMethod
	Skipped    []SkippedMethod
}

// Summary holds the run-level statistics used by the reports
type Summary struct {
	TotalControllers int
	TotalRoutes      int
	TotalSkipped     int
	GeneratedDate    string
	APIBase          string
}

// NewSummary computes the summary of a set of generated files
func NewSummary(files []*ClientFile, apiBase, date string) *Summary {
	s := &Summary{
		TotalControllers: len(files),
		GeneratedDate:    date,
		APIBase:          apiBase,
	}
	for _, f := range files {
		s.TotalRoutes += len(f.Methods)
		s.TotalSkipped += len(f.Skipped)
	}
	return s
}
