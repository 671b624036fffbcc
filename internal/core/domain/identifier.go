package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// IdentifierScheme is an optional prefix accepted in front of an identifier.
const IdentifierScheme = "github://"

// Identifier addresses a single file in a remote repository.
// Branch is empty until it has been resolved against the repository configuration.
type Identifier struct {
	Owner    string
	Repo     string
	Branch   string
	FilePath string
}

// ParseIdentifier parses owner/repo[@branch]/path into an Identifier.
func ParseIdentifier(raw string) (Identifier, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), IdentifierScheme)

	parts := strings.SplitN(s, "/", 3)
	if len(parts) < 3 {
		return Identifier{}, invalidIdentifier(raw, "expected owner/repo[@branch]/path")
	}

	owner, repoPart, filePath := parts[0], parts[1], strings.Trim(parts[2], "/")

	repo, branch, hasBranch := strings.Cut(repoPart, "@")
	switch {
	case owner == "" || strings.Contains(owner, "@"):
		return Identifier{}, invalidIdentifier(raw, "missing or malformed owner")
	case repo == "":
		return Identifier{}, invalidIdentifier(raw, "missing repository name")
	case hasBranch && (branch == "" || strings.Contains(branch, "@")):
		return Identifier{}, invalidIdentifier(raw, "empty or malformed branch after '@'")
	case filePath == "":
		return Identifier{}, invalidIdentifier(raw, "missing file path")
	}

	return Identifier{
		Owner:    owner,
		Repo:     repo,
		Branch:   branch,
		FilePath: filePath,
	}, nil
}

func invalidIdentifier(raw, reason string) error {
	return zerr.With(zerr.Wrap(ErrInvalidIdentifier, reason), "identifier", raw)
}

// RepoKey returns the owner/repo key used to look up repository configuration.
func (id Identifier) RepoKey() string {
	return RepoKey(id.Owner, id.Repo)
}

// WithBranch returns a copy of the identifier pinned to branch.
func (id Identifier) WithBranch(branch string) Identifier {
	id.Branch = branch
	return id
}

// String renders the identifier back into its canonical string form.
func (id Identifier) String() string {
	return FormatReference(id.Owner, id.Repo, id.Branch, id.FilePath)
}

// CacheKey returns the cache key of the identifier.
func (id Identifier) CacheKey() CacheKey {
	return CacheKey{Owner: id.Owner, Repo: id.Repo, Branch: id.Branch, FilePath: id.FilePath}
}

// RepoKey joins owner and repository name.
func RepoKey(owner, repo string) string {
	return owner + "/" + repo
}

// FormatReference builds a resolvable identifier string.
func FormatReference(owner, repo, branch, filePath string) string {
	var b strings.Builder
	b.WriteString(owner)
	b.WriteByte('/')
	b.WriteString(repo)
	if branch != "" {
		b.WriteByte('@')
		b.WriteString(branch)
	}
	b.WriteByte('/')
	b.WriteString(filePath)
	return b.String()
}
