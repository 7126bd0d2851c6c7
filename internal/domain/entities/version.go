package entities

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OtherVersion is the sentinel used for tokens that could not be classified.
// It parses to the lowest possible version.
const OtherVersion = "other"

const (
	minVersionParts = 2
	maxVersionParts = 4
)

var errVersionShape = errors.New("need a version with 2 to 4 parts")

// Qualifier is the pre-release marker attached to a version.
type Qualifier int

const (
	QualifierNone Qualifier = iota
	QualifierBeta
	QualifierSnapshot
	QualifierOther
)

func (q Qualifier) String() string {
	switch q {
	case QualifierBeta:
		return "beta"
	case QualifierSnapshot:
		return "snapshot"
	case QualifierOther:
		return "other"
	default:
		return "none"
	}
}

// otherQualifiers are the free-form suffixes that were actually observed and
// are still ordered structurally. Anything else falls back to string order.
var otherQualifiers = []string{"bbn"}

var partSeparator = regexp.MustCompile(`[-.]`)

// ParsedVersion is the structured form of a normalized version token.
type ParsedVersion struct {
	Major           int
	Minor           int
	Revision        int
	Build           int // fourth numeric segment, as in 3.10.1.2
	Qualifier       Qualifier
	QualifierNumber int
}

// ParseVersion decomposes a token of the shape N.N[.N[.N]] with an optional
// beta/snapshot/other qualifier and build stamp. The sentinel "other" parses
// to the zero version.
func ParseVersion(version string) (ParsedVersion, error) {
	var v ParsedVersion
	if version == OtherVersion {
		return v, nil
	}

	parts := partSeparator.Split(version, -1)
	if len(parts) < minVersionParts || len(parts) > maxVersionParts {
		return v, fmt.Errorf("%w, but had %d resulting from %q", errVersionShape, len(parts), version)
	}

	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return v, fmt.Errorf("invalid major in %q: %w", version, err)
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return v, fmt.Errorf("invalid minor in %q: %w", version, err)
	}
	if len(parts) > 2 {
		if err = v.applyPart(parts[2], &v.Revision); err != nil {
			return v, fmt.Errorf("invalid part in %q: %w", version, err)
		}
	}
	if len(parts) > 3 {
		err = v.applyFourthPart(parts[3])
		if err != nil {
			return v, fmt.Errorf("invalid part in %q: %w", version, err)
		}
	}
	return v, nil
}

func (v *ParsedVersion) applyFourthPart(part string) error {
	if v.Qualifier == QualifierNone {
		return v.applyPart(part, &v.Build)
	}
	// the build stamp of "3.14-beta1-20151223" only counts when the
	// qualifier itself carried no number
	if v.QualifierNumber != 0 || part == "" {
		return nil
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return err
	}
	v.QualifierNumber = n
	return nil
}

// applyPart interprets a segment either as a qualifier or as the numeric
// value stored in target. Unparsable text becomes QualifierOther.
func (v *ParsedVersion) applyPart(part string, target *int) error {
	if rest, ok := cutPrefixFold(part, "beta"); ok {
		v.Qualifier = QualifierBeta
		return v.setQualifierNumber(rest)
	}
	if rest, ok := cutPrefixFold(part, "snapshot"); ok {
		v.Qualifier = QualifierSnapshot
		return v.setQualifierNumber(rest)
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		v.Qualifier = QualifierOther
		return nil //nolint:nilerr // free-form text is a qualifier, not a failure
	}
	*target = n
	return nil
}

func (v *ParsedVersion) setQualifierNumber(rest string) error {
	if rest == "" {
		return nil
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return err
	}
	v.QualifierNumber = n
	return nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// Compare orders two parsed versions: numeric segments first, then the
// qualifier table. A side without any qualifier outranks a qualified one;
// between qualified sides the qualifier numbers decide (missing counts as 0).
// Ties are left to the caller, which breaks them on the raw strings.
func (v ParsedVersion) Compare(o ParsedVersion) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Revision, o.Revision); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Build, o.Build); c != 0 {
		return c
	}

	released, otherReleased := v.Qualifier == QualifierNone, o.Qualifier == QualifierNone
	switch {
	case released && !otherReleased:
		return 1
	case !released && otherReleased:
		return -1
	}
	return cmp.Compare(v.QualifierNumber, o.QualifierNumber)
}

func (v ParsedVersion) String() string {
	return fmt.Sprintf(
		"Version{major=%d, minor=%d, revision=%d, build=%d, qualifier=%s, qualifierNumber=%d}",
		v.Major, v.Minor, v.Revision, v.Build, v.Qualifier, v.QualifierNumber,
	)
}
