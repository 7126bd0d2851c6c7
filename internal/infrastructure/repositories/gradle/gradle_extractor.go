package gradle

import (
	"context"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/patterns"
)

const (
	shapeShort     = "short"
	shapeLong      = "long"
	shapeLongName  = "long-name-first"
	shapeShortVar  = "short-var"
	shapeNoVersion = "no-version"
)

type shape struct {
	name    string
	pattern *regexp.Regexp
}

// noVersionMarkers are declarations of the core artifact without any version.
var noVersionMarkers = []string{
	"'" + entities.TargetGroup + ":poi'",
	`"` + entities.TargetGroup + `:poi"`,
}

// benignMarkers are known reasons for the group to appear without a
// dependency declaration.
var benignMarkers = []string{
	"compile 'fr.opensagres.xdocreport:" + entities.TargetGroup + ".",
	"implementation 'fr.opensagres.xdocreport:" + entities.TargetGroup + ".",
	"main = '" + entities.TargetGroup + ".benchmark",
	// copies of the Android port
	entities.TargetGroup + ".java.awt",
}

// Extractor understands Gradle build scripts (Groovy and Kotlin DSL).
type Extractor struct {
	exclude       *regexp.Regexp
	shapes        []shape
	definitionFmt string
}

// NewExtractor compiles the Gradle declaration shapes.
func NewExtractor() *Extractor {
	g := patterns.Group
	q := patterns.Quote
	v := patterns.Version
	return &Extractor{
		exclude: regexp.MustCompile(patterns.Alternatives(
			// 'org.apache.poi:ooxml-schemas:1.3'
			patterns.Template("'"+g+`:ooxml-schemas:1\.\d+'`),
			// [group: 'org.apache.poi', name: 'openxml4j', version: '1.0-beta'],
			patterns.Template("group: '"+g+"', name: 'openxml4j'"),
			// compile group: 'org.apache.poi', name: 'ooxml-schemas', version: '1.3'
			patterns.Template("group: '"+g+"', name: 'ooxml-schemas'"),
			// compile files('libs/org.apache.poi.xwpf.converter.xhtml-1.0.0.jar')
			// relocate 'javax.xml.namespace', 'org.apache.poi.javax.xml.namespace'
			g+`\.(?:xwpf|javax)\.`,
			// exclude group: 'org.apache.poi', module: 'poi'
			patterns.Template("exclude group: '"+g+"', module: '[-a-z]+'"),
			patterns.Template("group: '"+g+"', name: 'com.springsource.org.apache.poi'"),
			`(?m:^\s*//.*)`,
		)),
		shapes: []shape{
			// compile 'org.apache.poi:poi:3.13'
			{shapeShort, regexp.MustCompile(q + g + `:[-a-z]+:` + v + q)},
			// compile group: 'org.apache.poi', name: 'poi', version: '3.15'
			{shapeLong, regexp.MustCompile(
				`group\s*:\s*` + q + g + q + `\s*,\s*name\s*:\s*` + q + `[-a-z]+` + q +
					`\s*,\s*version\s*:\s*` + q + v + q,
			)},
			{shapeLongName, regexp.MustCompile(
				`name\s*:\s*` + q + `[-a-z]+` + q + `\s*,\s*group\s*:\s*` + q + g + q +
					`\s*,\s*version\s*:\s*` + q + v + q,
			)},
			// compile 'org.apache.poi:poi:' + poiVersion
			{shapeShortVar, regexp.MustCompile(q + g + `:[-a-z]+:` + q + `\s*\+\s*` + v)},
		},
		definitionFmt: `def\s+%s` + patterns.VariableDefinition,
	}
}

func (it *Extractor) Dialect() entities.Dialect { return entities.DialectGradle }

func (it *Extractor) Filter(text string) string {
	return it.exclude.ReplaceAllString(text, "")
}

func (it *Extractor) Extract(text string) entities.Match {
	for _, s := range it.shapes {
		if raw, ok := patterns.FindFirst(s.pattern, text); ok {
			return entities.Match{Kind: entities.MatchLiteral, Raw: raw, Shape: s.name}
		}
	}
	if patterns.Contains(text, noVersionMarkers) {
		return entities.Match{Kind: entities.MatchNoVersion, Shape: shapeNoVersion}
	}
	return entities.Match{Kind: entities.MatchNotFound}
}

func (it *Extractor) IsBenign(text string) bool {
	return patterns.Contains(text, benignMarkers)
}

// Resolve handles both Gradle reference styles: "$name" / "${name}" against
// name = 'value', then a concatenated '+name against def name = 'value'.
// Gradle variables never live in another file, so lookup is unused.
func (it *Extractor) Resolve(
	_ context.Context,
	token string,
	text string,
	location entities.SourceLocation,
	_ repositories.ParentLookup,
) (string, bool, error) {
	value := token
	resolved := false

	if strings.HasPrefix(value, "$") {
		name := patterns.VariableName(value)
		definition := regexp.MustCompile(regexp.QuoteMeta(name) + patterns.VariableDefinition)
		if found, ok := patterns.FindFirst(definition, text); ok {
			value, resolved = found, true
		}
	}

	if !strings.Contains(text, "'+"+value) && !strings.Contains(text, `"+`+value) {
		return value, resolved, nil
	}

	name, err := it.variableName(value)
	if err != nil {
		return token, false, &entities.MalformedVariableError{
			Location: location.String(),
			Token:    value,
			Err:      err,
		}
	}
	definition := regexp.MustCompile(strings.Replace(it.definitionFmt, "%s", regexp.QuoteMeta(name), 1))
	if found, ok := patterns.FindFirst(definition, text); ok {
		logger.Debugf("[gradle] resolved %s to %s at %s", value, found, location)
		return found, true, nil
	}
	return value, resolved, nil
}

// variableName checks that a concatenated name can be used in a pattern. A
// single unmatched trailing ")" is the closing call parenthesis, as in
// compile('org.apache.poi:poi:'+poiVersion), and is dropped.
func (it *Extractor) variableName(token string) (string, error) {
	_, err := regexp.Compile(token)
	if err == nil {
		return token, nil
	}
	if !strings.HasSuffix(token, ")") || strings.Contains(token, "(") {
		return "", err
	}
	trimmed := strings.TrimSuffix(token, ")")
	if _, retryErr := regexp.Compile(trimmed); retryErr != nil {
		return "", retryErr
	}
	return trimmed, nil
}
