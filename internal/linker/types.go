package linker

import "strings"

// TypeIdentifiers returns the root identifiers a type expression refers to,
// in order of first appearance. Property keys of object literal types,
// parameter names of function types and string literal types are skipped.
// "Page<filters.Filter>" yields [Page filters].
func TypeIdentifiers(typeText string) []string {
	var result []string
	seen := make(map[string]bool)

	for i := 0; i < len(typeText); i++ {
		char := typeText[i]

		if char == '\'' || char == '"' || char == '`' {
			end := strings.IndexByte(typeText[i+1:], char)
			if end < 0 {
				break
			}
			i += end + 1
			continue
		}

		if !isIdentStart(char) {
			continue
		}
		if i > 0 && (isIdentPart(typeText[i-1]) || typeText[i-1] == '.') {
			continue
		}

		start := i
		for i < len(typeText) && (isIdentPart(typeText[i]) || typeText[i] == '.') {
			i++
		}
		ident := strings.TrimRight(typeText[start:i], ".")
		i-- // loop increment

		if isPropertyKey(typeText[start+len(ident):]) {
			continue
		}

		root, _, _ := strings.Cut(ident, ".")
		if !seen[root] {
			seen[root] = true
			result = append(result, root)
		}
	}

	return result
}

// isPropertyKey reports whether the text after an identifier makes it a key
// ("name: T", "name?: T")
func isPropertyKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "?:")
}

func isIdentStart(char byte) bool {
	return char == '_' || char == '$' || char >= 0x80 ||
		(char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isIdentPart(char byte) bool {
	return isIdentStart(char) || (char >= '0' && char <= '9')
}
