package model

import "strings"

// Visibility is the access modifier of a class member.
// The zero value is treated as public, matching TypeScript's default.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// IsPublic reports whether the member is callable from outside the class
func (v Visibility) IsPublic() bool {
	return v == "" || v == VisibilityPublic
}

// Decorator represents one decorator application, e.g. @Param('id')
type Decorator struct {
	Name string   `yaml:"name"`           // e.g., "Get", "Param"
	Args []string `yaml:"args,omitempty"` // raw argument texts, e.g. ["'id'", "ParseIntPipe"]
}

// Arg returns the i-th raw argument
func (d Decorator) Arg(i int) (string, bool) {
	if i < 0 || i >= len(d.Args) {
		return "", false
	}
	return d.Args[i], true
}

// String renders the decorator back to source form
func (d Decorator) String() string {
	return "@" + d.Name + "(" + strings.Join(d.Args, ", ") + ")"
}

// Parameter describes one declared method parameter
type Parameter struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type,omitempty"`
	Optional   bool        `yaml:"optional,omitempty"`
	Decorators []Decorator `yaml:"decorators,omitempty"`
}

// Signature is an overload signature sharing the implementation of a method
type Signature struct {
	Params     []Parameter `yaml:"params,omitempty"`
	ReturnType string      `yaml:"returnType,omitempty"`
}

// Method describes a class method as declared in the controller
type Method struct {
	Name       string      `yaml:"name"`
	Params     []Parameter `yaml:"params,omitempty"`
	Decorators []Decorator `yaml:"decorators,omitempty"`
	Visibility Visibility  `yaml:"visibility,omitempty"`
	Static     bool        `yaml:"static,omitempty"`
	ReturnType string      `yaml:"returnType,omitempty"`
	Overloads  []Signature `yaml:"overloads,omitempty"`
	Line       int         `yaml:"line,omitempty"`
}

// HasDecorator reports whether the method carries a decorator with the given name
func (m *Method) HasDecorator(name string) bool {
	for _, d := range m.Decorators {
		if d.Name == name {
			return true
		}
	}
	return false
}

// ImportSpecifier is one entry of a named import clause: { Name as Alias }
type ImportSpecifier struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"alias,omitempty"`
}

// Local returns the identifier the import binds in the importing file
func (s ImportSpecifier) Local() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// String renders the specifier in source form
func (s ImportSpecifier) String() string {
	if s.Alias != "" && s.Alias != s.Name {
		return s.Name + " as " + s.Alias
	}
	return s.Name
}

// Import describes one import declaration of a source file
type Import struct {
	Module    string            `yaml:"module"`
	Default   string            `yaml:"default,omitempty"`
	Namespace string            `yaml:"namespace,omitempty"`
	Named     []ImportSpecifier `yaml:"named,omitempty"`
}

// ControllerDecorator is the class decorator marking a routing controller
const ControllerDecorator = "Controller"

// Controller describes a class carrying the routing decorator
type Controller struct {
	Name       string      `yaml:"name"`
	File       string      `yaml:"file,omitempty"`
	Decorators []Decorator `yaml:"decorators,omitempty"`
	Methods    []Method    `yaml:"methods,omitempty"`

	// Imports and LocalTypes of the declaring file, used to link the
	// types referenced by generated signatures.
	Imports    []Import `yaml:"imports,omitempty"`
	LocalTypes []string `yaml:"localTypes,omitempty"`
}

// RoutingDecorator returns the @Controller decorator of the class
func (c *Controller) RoutingDecorator() (Decorator, bool) {
	for _, d := range c.Decorators {
		if d.Name == ControllerDecorator {
			return d, true
		}
	}
	return Decorator{}, false
}

// IsController checks if the class carries the routing decorator
func (c *Controller) IsController() bool {
	_, ok := c.RoutingDecorator()
	return ok
}
