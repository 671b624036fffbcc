package domain

import (
	"path"
	"slices"
	"strings"
)

const (
	markdownSuffix = ".md"
	roleSuffix     = ".role.md"
)

// kindSuffixes is checked before the generic markdown suffix.
var kindSuffixes = []struct {
	suffix string
	kind   Kind
}{
	{roleSuffix, KindRole},
	{".thought.md", KindThought},
	{".execution.md", KindExecution},
	{".knowledge.md", KindKnowledge},
}

// Classify maps a file name or path to its resource kind.
func Classify(name string) Kind {
	for _, ks := range kindSuffixes {
		if strings.HasSuffix(name, ks.suffix) {
			return ks.kind
		}
	}
	if strings.HasSuffix(name, markdownSuffix) {
		return KindGeneric
	}
	return KindNone
}

// StripKindSuffix removes the kind suffix (or plain .md) from the base name of p.
func StripKindSuffix(p string) string {
	base := path.Base(p)
	for _, ks := range kindSuffixes {
		if trimmed, ok := strings.CutSuffix(base, ks.suffix); ok {
			return trimmed
		}
	}
	return strings.TrimSuffix(base, markdownSuffix)
}

// RoleID extracts the role a file belongs to from its prefix-relative path.
// Nested files belong to the role named by their first directory.
func RoleID(relPath string) string {
	segments := strings.Split(strings.Trim(relPath, "/"), "/")
	if len(segments) >= 2 {
		return segments[0]
	}
	if id, ok := strings.CutSuffix(segments[0], roleSuffix); ok {
		return id
	}
	return strings.TrimSuffix(segments[0], markdownSuffix)
}

// ClassifiedFile is a listed file with its prefix-relative path and kind.
type ClassifiedFile struct {
	Entry   FileEntry
	RelPath string
	Kind    Kind
}

// RoleGroup is a set of files sharing a role id.
type RoleGroup struct {
	RoleID string
	Files  []ClassifiedFile
}

// GroupByRole classifies files and groups the resource-related ones by role id.
// Files are relative to prefix; files outside it and non-markdown files are dropped.
// Groups are returned in order of first appearance after sorting by path.
func GroupByRole(prefix string, files []FileEntry) []RoleGroup {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b FileEntry) int { return strings.Compare(a.Path, b.Path) })

	var groups []RoleGroup
	index := make(map[string]int)

	for _, f := range sorted {
		rel, ok := relativeTo(prefix, f.Path)
		if !ok {
			continue
		}
		kind := Classify(rel)
		if kind == KindNone {
			continue
		}

		id := RoleID(rel)
		if id == "" {
			continue
		}
		i, seen := index[id]
		if !seen {
			i = len(groups)
			index[id] = i
			groups = append(groups, RoleGroup{RoleID: id})
		}
		groups[i].Files = append(groups[i].Files, ClassifiedFile{Entry: f, RelPath: rel, Kind: kind})
	}

	return groups
}

func relativeTo(prefix, p string) (string, bool) {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return strings.TrimPrefix(p, "/"), true
	}
	rel, ok := strings.CutPrefix(strings.TrimPrefix(p, "/"), prefix+"/")
	if !ok || rel == "" {
		return "", false
	}
	return rel, true
}

// MainFileRule selects candidate main files for a role group.
type MainFileRule struct {
	Name  string
	Match func(roleID, relPath string) bool
}

// MainFileRules is the ordered main-file selection policy; the first matching rule wins.
var MainFileRules = []MainFileRule{
	{
		Name: "nested-exact",
		Match: func(id, p string) bool {
			return p == id+"/"+id+roleSuffix
		},
	},
	{
		Name: "flat-exact",
		Match: func(id, p string) bool {
			return p == id+roleSuffix
		},
	},
	{
		Name: "role-containing-id",
		Match: func(id, p string) bool {
			return strings.Contains(p, id) && strings.HasSuffix(p, roleSuffix)
		},
	},
	{
		Name: "any-role",
		Match: func(_, p string) bool {
			return strings.HasSuffix(p, roleSuffix)
		},
	},
	{
		Name: "any-markdown",
		Match: func(_, p string) bool {
			return strings.HasSuffix(p, markdownSuffix)
		},
	},
}

// SelectMainFile returns the index of the group's main file, or -1 if none qualifies.
func SelectMainFile(g RoleGroup) int {
	for _, rule := range MainFileRules {
		for i, f := range g.Files {
			if rule.Match(g.RoleID, f.RelPath) {
				return i
			}
		}
	}
	return -1
}
