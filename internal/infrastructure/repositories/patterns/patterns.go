// Package patterns holds the regular-expression fragments shared by the
// dialect extractors.
package patterns

import (
	"regexp"
	"strings"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

const (
	// Version captures a version token, including unresolved variable
	// references such as ${poi.version} and ranges such as [3.8-beta5,).
	Version = `([-0-9A-Za-z.$_{}()\[\]+]+)`

	// Quote is an optional single or double quote.
	Quote = `["']?`

	// VariableDefinition matches the right-hand side of name = 'value'.
	VariableDefinition = `\s*=\s*` + Quote + Version + Quote
)

// Group is the escaped target group identifier.
var Group = regexp.QuoteMeta(entities.TargetGroup)

// Template expands a readable pattern: a space stands for any run of
// whitespace and a single quote for either quote character.
func Template(readable string) string {
	return strings.NewReplacer(" ", `\s*`, "'", `["']`).Replace(readable)
}

// Alternatives joins patterns into one non-capturing alternation.
func Alternatives(alternatives ...string) string {
	return "(?:" + strings.Join(alternatives, "|") + ")"
}

// VariableName strips the $ / ${...} wrapping of a variable reference.
func VariableName(token string) string {
	name := strings.TrimPrefix(token, "$")
	name = strings.TrimSuffix(name, "}")
	return strings.TrimPrefix(name, "{")
}

// FindFirst returns the first capture group of the first match.
func FindFirst(pattern *regexp.Regexp, text string) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Contains reports whether text contains any of the markers.
func Contains(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
