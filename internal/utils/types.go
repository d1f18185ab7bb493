package utils

import "strings"

// builtinTypes are names that never need an import in generated code
var builtinTypes = map[string]bool{
	// primitives and special types
	"string": true, "number": true, "boolean": true, "bigint": true,
	"symbol": true, "object": true, "any": true, "unknown": true,
	"never": true, "void": true, "undefined": true, "null": true,
	"true": true, "false": true, "this": true, "keyof": true,
	"typeof": true, "infer": true, "readonly": true, "unique": true,
	"extends": true, "is": true, "asserts": true, "in": true,

	// global objects
	"Object": true, "String": true, "Number": true, "Boolean": true,
	"Array": true, "ReadonlyArray": true, "Date": true, "RegExp": true,
	"Error": true, "Function": true, "Promise": true, "Map": true,
	"Set": true, "WeakMap": true, "WeakSet": true, "Symbol": true,
	"BigInt": true, "ArrayBuffer": true, "Blob": true, "File": true,
	"FormData": true, "URLSearchParams": true, "Uint8Array": true,

	// utility types
	"Partial": true, "Required": true, "Readonly": true, "Record": true,
	"Pick": true, "Omit": true, "Exclude": true, "Extract": true,
	"NonNullable": true, "ReturnType": true, "Parameters": true,
	"InstanceType": true, "Awaited": true, "Uppercase": true,
	"Lowercase": true, "Capitalize": true, "Uncapitalize": true,
}

// IsBuiltinType reports whether a type identifier is provided by the
// language or its standard library and must not be imported
func IsBuiltinType(name string) bool {
	return builtinTypes[strings.TrimSpace(name)]
}
