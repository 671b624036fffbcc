// Package domain contains the core models of remote resources, their cache entries and configuration.
package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Kind is the closed set of resource kinds produced by Classify.
type Kind int

const (
	// KindNone marks a file that is not resource-related.
	KindNone Kind = iota
	// KindGeneric marks a plain markdown file without a kind suffix.
	KindGeneric
	// KindRole marks a role definition.
	KindRole
	// KindThought marks a thought pattern.
	KindThought
	// KindExecution marks an execution procedure.
	KindExecution
	// KindKnowledge marks a knowledge document.
	KindKnowledge
)

var kindNames = map[Kind]string{
	KindNone:      "none",
	KindGeneric:   "generic",
	KindRole:      "role",
	KindThought:   "thought",
	KindExecution: "execution",
	KindKnowledge: "knowledge",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsResource reports whether k is one of the four registry kinds.
func (k Kind) IsResource() bool {
	switch k {
	case KindRole, KindThought, KindExecution, KindKnowledge:
		return true
	case KindNone, KindGeneric:
		return false
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return zerr.With(zerr.New("unknown resource kind"), "kind", string(text))
}

// FileEntry is a file listed from a remote repository.
type FileEntry struct {
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int    `json:"size"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	HTMLURL     string `json:"htmlUrl,omitempty"`
}

// ResourceMetadata is attached to every discovered resource.
type ResourceMetadata struct {
	SHA                string    `json:"sha"`
	Size               int       `json:"size"`
	Path               string    `json:"path"`
	ScannedAt          time.Time `json:"scannedAt"`
	RepositoryPriority int       `json:"repositoryPriority"`
	HTMLURL            string    `json:"htmlUrl,omitempty"`
	DownloadURL        string    `json:"downloadUrl,omitempty"`
}

// ResourceDescriptor is a single registry entry.
type ResourceDescriptor struct {
	ID            string           `json:"id"`
	Kind          Kind             `json:"kind"`
	RoleID        string           `json:"roleId"`
	SourceRepoKey string           `json:"sourceRepoKey"`
	Branch        string           `json:"branch"`
	Reference     string           `json:"reference"`
	Metadata      ResourceMetadata `json:"metadata"`
}

// Key identifies a descriptor within a registry.
// Kinds have separate id spaces, so a role and its thought may share an id.
func (d ResourceDescriptor) Key() string {
	return d.Kind.String() + ":" + d.ID
}

// RegistrySourceRemote is the source tag of registries produced by discovery.
const RegistrySourceRemote = "remote"

// Registry is the immutable result of one discovery pass.
type Registry struct {
	Source    string               `json:"source"`
	Resources []ResourceDescriptor `json:"resources"`
}

// NewRegistry returns an empty remote registry.
func NewRegistry() *Registry {
	return &Registry{Source: RegistrySourceRemote, Resources: []ResourceDescriptor{}}
}

// Find returns the descriptor of the given kind and id.
func (r *Registry) Find(kind Kind, id string) (ResourceDescriptor, bool) {
	for _, d := range r.Resources {
		if d.Kind == kind && d.ID == id {
			return d, true
		}
	}
	return ResourceDescriptor{}, false
}
