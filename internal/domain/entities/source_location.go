package entities

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

const (
	githubHost   = "github.com"
	providerName = "github"
)

var (
	blobURLPattern = regexp.MustCompile(
		`^https://github\.com/([-a-zA-Z0-9_.]+)/([-a-zA-Z0-9_.]+)/blob/([^/]+)/(.+)$`,
	)
	rawURLPattern = regexp.MustCompile(
		`^https://raw\.githubusercontent\.com/([-a-zA-Z0-9_.]+)/([-a-zA-Z0-9_.]+)/([^/]+)/(.+)$`,
	)
)

// SourceLocation identifies the file (and the repository and revision owning it)
// a candidate was read from. Locations that do not follow the GitHub blob or raw
// URL shape are kept verbatim and report Parsed() == false.
type SourceLocation struct {
	raw    string
	parsed bool

	Owner string
	Repo  string
	Ref   string
	Path  string
}

// ParseSourceLocation decomposes a GitHub blob or raw-content URL.
func ParseSourceLocation(raw string) SourceLocation {
	for _, pattern := range []*regexp.Regexp{blobURLPattern, rawURLPattern} {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			return SourceLocation{
				raw:    raw,
				parsed: true,
				Owner:  m[1],
				Repo:   m[2],
				Ref:    m[3],
				Path:   m[4],
			}
		}
	}
	return SourceLocation{raw: raw}
}

// NewSourceLocation builds a blob-style location for a file at the given revision.
func NewSourceLocation(owner, repo, ref, filePath string) SourceLocation {
	loc := SourceLocation{
		parsed: true,
		Owner:  owner,
		Repo:   repo,
		Ref:    ref,
		Path:   strings.TrimPrefix(filePath, "/"),
	}
	loc.raw = loc.blobURL()
	return loc
}

func (l SourceLocation) blobURL() string {
	return fmt.Sprintf("https://%s/%s/%s/blob/%s/%s", githubHost, l.Owner, l.Repo, l.Ref, l.Path)
}

// String returns the location exactly as it was supplied or built.
func (l SourceLocation) String() string { return l.raw }

// Parsed reports whether owner, repository, ref and path are known.
func (l SourceLocation) Parsed() bool { return l.parsed }

// RawURL returns the raw-content URL of the file, or the verbatim location when
// it could not be parsed.
func (l SourceLocation) RawURL() string {
	if !l.parsed {
		return l.raw
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", l.Owner, l.Repo, l.Ref, l.Path)
}

// RepositoryKey is "owner/repo" for parsed locations and the verbatim location
// otherwise, so every location still lands in exactly one bucket.
func (l SourceLocation) RepositoryKey() string {
	if !l.parsed {
		return l.raw
	}
	return l.Owner + "/" + l.Repo
}

// Repository returns the hosting repository the file belongs to.
func (l SourceLocation) Repository() Repository {
	return Repository{
		Name:         l.Repo,
		Organization: l.Owner,
		RemoteURL:    fmt.Sprintf("https://%s/%s/%s.git", githubHost, l.Owner, l.Repo),
		ProviderName: providerName,
	}
}

// Parent returns the location of fileName one directory above the directory
// holding this file. It returns false once the repository root is reached.
func (l SourceLocation) Parent(fileName string) (SourceLocation, bool) {
	if !l.parsed {
		return SourceLocation{}, false
	}
	dir := path.Dir(l.Path)
	if dir == "." || dir == "/" {
		return SourceLocation{}, false
	}
	parentDir := path.Dir(dir)
	parentPath := fileName
	if parentDir != "." {
		parentPath = parentDir + "/" + fileName
	}
	return NewSourceLocation(l.Owner, l.Repo, l.Ref, parentPath), true
}
