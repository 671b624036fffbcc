package ports

import (
	"context"

	"go.trai.ch/gitres/internal/core/domain"
)

// ListOptions bounds a recursive listing.
type ListOptions struct {
	// MaxDepth is the number of directory levels below the root to descend into.
	MaxDepth int
	// Extensions filters files by suffix. Empty means all files.
	Extensions []string
}

// RepositoryClient reads files from a remote hosted repository.
// Transient failures are reported wrapped in domain.ErrTransientNetwork, missing
// paths in domain.ErrRemoteNotFound.
//
//go:generate mockgen -source=repository_client.go -destination=mocks/mock_repository_client.go -package=mocks
type RepositoryClient interface {
	// ListFilesRecursive lists files under root. A missing root yields an empty listing.
	ListFilesRecursive(
		ctx context.Context,
		repo domain.RepositoryConfig,
		branch, root string,
		opts ListOptions,
	) ([]domain.FileEntry, error)

	// GetFileContent fetches the decoded content and blob metadata of a file.
	GetFileContent(
		ctx context.Context,
		repo domain.RepositoryConfig,
		branch, filePath string,
	) (string, domain.FileMetadata, error)

	// GetFileLastCommit returns the commit that last touched filePath.
	GetFileLastCommit(
		ctx context.Context,
		repo domain.RepositoryConfig,
		branch, filePath string,
	) (domain.RemoteMetadata, error)

	// FileExists reports whether filePath exists on branch.
	FileExists(ctx context.Context, repo domain.RepositoryConfig, branch, filePath string) (bool, error)
}
