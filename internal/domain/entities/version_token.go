package entities

// NoVersionSentinel is the external form of a declaration without a version.
const NoVersionSentinel = "noVersion"

// TokenKind tags a VersionToken.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenNoVersion
)

// VersionToken is what an extraction reports for one file: either a literal
// (possibly unresolved variable) version string or "declared without version".
type VersionToken struct {
	Kind  TokenKind
	Value string
}

// LiteralToken wraps a version string.
func LiteralToken(value string) VersionToken {
	return VersionToken{Kind: TokenLiteral, Value: value}
}

// NoVersionToken marks a dependency declared without a version.
func NoVersionToken() VersionToken {
	return VersionToken{Kind: TokenNoVersion}
}

// String serializes the token, mapping NoVersion onto its sentinel.
func (t VersionToken) String() string {
	if t.Kind == TokenNoVersion {
		return NoVersionSentinel
	}
	return t.Value
}

// MatchKind is the result shape of a dialect extractor.
type MatchKind int

const (
	MatchNotFound MatchKind = iota
	MatchLiteral
	MatchNoVersion
)

// Match is the raw result of running a dialect's shape patterns over filtered text.
type Match struct {
	Kind  MatchKind
	Raw   string // captured token, only for MatchLiteral
	Shape string // name of the shape that matched
}

// Outcome classifies what happened to one candidate file.
type Outcome string

const (
	// OutcomeFound means a version token was emitted.
	OutcomeFound Outcome = "found"
	// OutcomeFiltered means the group literal disappeared after exclusion filtering.
	OutcomeFiltered Outcome = "filtered"
	// OutcomeBenign is a known-harmless non-match.
	OutcomeBenign Outcome = "benign"
	// OutcomeUnexpected is a non-match that needs manual triage.
	OutcomeUnexpected Outcome = "unexpected"
)

// Extraction is the engine's answer for one RawCandidate.
type Extraction struct {
	Outcome  Outcome
	Token    VersionToken
	Location SourceLocation
	Context  string // text around the group literal, set for OutcomeUnexpected
	Resolved bool   // true when the token came from a variable definition
}
