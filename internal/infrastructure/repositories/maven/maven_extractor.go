package maven

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
	pomFileName = "pom.xml"

	shapeGroupFirst    = "group-first"
	shapeArtifactFirst = "artifact-first"
	shapeNoVersion     = "no-version"

	optionalElements = `(?:scope|type|classifier|optional)`
)

type shape struct {
	name    string
	kind    entities.MatchKind
	pattern *regexp.Regexp
}

// benignMarkers mention the group as a package name rather than a dependency.
var benignMarkers = []string{
	"<mainClass>" + entities.TargetGroup + ".",
	"<pattern>" + entities.TargetGroup,
	"<include>" + entities.TargetGroup,
	entities.TargetGroup + ".java.awt",
}

// Extractor understands Maven POM files, including property references that
// are only defined in a parent POM further up the repository.
type Extractor struct {
	exclude *regexp.Regexp
	shapes  []shape
}

// NewExtractor compiles the POM declaration shapes.
func NewExtractor() *Extractor {
	g := patterns.Group
	v := patterns.Version
	return &Extractor{
		exclude: regexp.MustCompile(patterns.Alternatives(
			`<artifactId>ooxml-schemas</artifactId>\s*<version>`+v+`</version>`,
			`<artifactId>`+g+`\.xwpf\.converter\.[a-z]+</artifactId>`,
			// the group's own parent POM
			`<groupId>`+g+`</groupId>\s*<artifactId>poi-parent</artifactId>\s*<packaging>pom</packaging>`,
			`<module\.name>`+g+`[^<]*</module\.name>`,
			`<`+g+`\.util\.POILogger>[^<]*</`+g+`\.util\.POILogger>`,
			`<dependency>\s*<groupId>`+g+`</groupId>\s*<artifactId>poi-ooxml(?:-schemas)?</artifactId>\s*`+
				`<type>jar</type>\s*</dependency>`,
			patterns.Template("exclude group: '"+g+"', module: '[-a-z]+'"),
			`<replacevalue>`+g+`[^<]*</replacevalue>`,
			`(?s:<!--.*?-->)`,
			`(?s:<exclusion>.*?</exclusion>)`,
		)),
		shapes: []shape{
			{shapeGroupFirst, entities.MatchLiteral, regexp.MustCompile(
				`<groupId>` + g + `</groupId>\s*<artifactId>[^<]*</artifactId>\s*<version>` + v + `</version>`,
			)},
			{shapeArtifactFirst, entities.MatchLiteral, regexp.MustCompile(
				`<artifactId>[^<]*</artifactId>\s*<groupId>` + g + `</groupId>\s*<version>` + v + `</version>`,
			)},
			{shapeNoVersion, entities.MatchNoVersion, regexp.MustCompile(
				`<dependency>\s*<groupId>` + g + `</groupId>\s*<artifactId>poi(?:-[-a-z]+)?</artifactId>\s*` +
					`(?:<` + optionalElements + `>[^<]*</` + optionalElements + `>\s*)*</dependency>`,
			)},
		},
	}
}

func (it *Extractor) Dialect() entities.Dialect { return entities.DialectMaven }

func (it *Extractor) Filter(text string) string {
	return it.exclude.ReplaceAllString(text, "")
}

func (it *Extractor) Extract(text string) entities.Match {
	for _, s := range it.shapes {
		m := s.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		match := entities.Match{Kind: s.kind, Shape: s.name}
		if s.kind == entities.MatchLiteral {
			match.Raw = m[1]
		}
		return match
	}
	return entities.Match{Kind: entities.MatchNotFound}
}

func (it *Extractor) IsBenign(text string) bool {
	return patterns.Contains(text, benignMarkers)
}

// Resolve looks a ${name} reference up as a <name>value</name> property,
// first in the file itself and then in the pom.xml of each parent directory.
func (it *Extractor) Resolve(
	ctx context.Context,
	token string,
	text string,
	location entities.SourceLocation,
	lookup repositories.ParentLookup,
) (string, bool, error) {
	if !strings.HasPrefix(token, "$") {
		return token, false, nil
	}

	name := regexp.QuoteMeta(patterns.VariableName(token))
	property := regexp.MustCompile(`<` + name + `>` + patterns.Version + `</` + name + `>`)
	if value, ok := patterns.FindFirst(property, text); ok {
		return value, true, nil
	}

	if lookup.Fetcher == nil {
		return token, false, nil
	}

	current := location
	for depth := 0; depth < lookup.MaxDepth; depth++ {
		parent, ok := current.Parent(pomFileName)
		if !ok {
			return token, false, nil
		}

		content, err := lookup.Fetcher.Fetch(ctx, parent, lookup.Timeout)
		if err != nil {
			logger.Infof("[maven] could not find parent pom at %s for %s: %v", parent.RawURL(), location, err)
			return token, false, nil
		}
		if value, found := patterns.FindFirst(property, content); found {
			logger.Debugf("[maven] resolved %s to %s from %s", token, value, parent)
			return value, true, nil
		}
		current = parent
	}

	logger.Infof("[maven] gave up resolving %s for %s after %d parent levels", token, location, lookup.MaxDepth)
	return token, false, nil
}
