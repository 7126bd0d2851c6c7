package entities

import (
	"fmt"
	"path"
	"strings"
)

// Dialect identifies the build-declaration syntax a file is written in.
type Dialect string

const (
	DialectGradle Dialect = "gradle"
	DialectMaven  Dialect = "maven"
)

// TargetGroup is the group identifier of the library whose usage is tracked.
const TargetGroup = "org.apache.poi"

// ParseDialect maps a user-supplied name onto a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(DialectGradle):
		return DialectGradle, nil
	case string(DialectMaven), "pom":
		return DialectMaven, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (expected gradle or maven)", name)
	}
}

// DialectForFile guesses the dialect from a file name, returning false for
// files that are neither Gradle build scripts nor Maven POMs.
func DialectForFile(filePath string) (Dialect, bool) {
	base := path.Base(filePath)
	switch {
	case base == "pom.xml":
		return DialectMaven, true
	case strings.HasSuffix(base, ".gradle"), strings.HasSuffix(base, ".gradle.kts"):
		return DialectGradle, true
	default:
		return "", false
	}
}

// RawCandidate is the full text of one discovered build file.
type RawCandidate struct {
	Text     string
	Location SourceLocation
	Dialect  Dialect
}
