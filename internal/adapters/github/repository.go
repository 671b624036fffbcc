package github

import (
	"context"
	"errors"
	"io"
	"path"
	"slices"
	"strings"

	gh "github.com/google/go-github/v67/github"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	contentTypeFile = "file"
	contentTypeDir  = "dir"

	// encodingNone is reported for files too large to be inlined in a contents response.
	encodingNone = "none"
)

type contents struct {
	file *gh.RepositoryContent
	dir  []*gh.RepositoryContent
}

func (c *Client) getContents(
	ctx context.Context,
	repo domain.RepositoryConfig,
	branch, p string,
) (contents, error) {
	api := c.api(repo)
	opts := &gh.RepositoryContentGetOptions{Ref: branch}

	return call(ctx, c, "get_contents", func() (contents, *gh.Response, error) {
		file, dir, resp, err := api.Repositories.GetContents(ctx, repo.Owner, repo.Name, p, opts)
		return contents{file: file, dir: dir}, resp, err
	})
}

// ListFilesRecursive walks the tree below root breadth first, descending at most
// opts.MaxDepth directory levels. A missing root yields an empty listing.
func (c *Client) ListFilesRecursive(
	ctx context.Context,
	repo domain.RepositoryConfig,
	branch, root string,
	opts ports.ListOptions,
) ([]domain.FileEntry, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = domain.DefaultMaxDepth
	}
	root = strings.Trim(root, "/")

	type pending struct {
		path  string
		depth int
	}

	var files []domain.FileEntry
	queue := []pending{{path: root}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		listing, err := c.getContents(ctx, repo, branch, item.path)
		if err != nil {
			if errors.Is(err, domain.ErrRemoteNotFound) {
				c.logger.Debug("listing path not found", "repo", repo.Key(), "branch", branch, "path", item.path)
				continue
			}
			return nil, withRepo(zerr.Wrap(err, "failed to list repository"), repo, branch, item.path)
		}

		if listing.file != nil {
			if matchesExtension(listing.file.GetPath(), opts.Extensions) {
				files = append(files, toFileEntry(listing.file))
			}
			continue
		}

		for _, entry := range listing.dir {
			switch entry.GetType() {
			case contentTypeDir:
				if item.depth < maxDepth {
					queue = append(queue, pending{path: entry.GetPath(), depth: item.depth + 1})
				}
			case contentTypeFile:
				if matchesExtension(entry.GetPath(), opts.Extensions) {
					files = append(files, toFileEntry(entry))
				}
			}
		}
	}

	slices.SortFunc(files, func(a, b domain.FileEntry) int {
		return strings.Compare(a.Path, b.Path)
	})

	c.logger.Debug("listed repository", "repo", repo.Key(), "branch", branch, "root", root, "files", len(files))
	return files, nil
}

// GetFileContent fetches and decodes a file together with its blob metadata.
func (c *Client) GetFileContent(
	ctx context.Context,
	repo domain.RepositoryConfig,
	branch, filePath string,
) (string, domain.FileMetadata, error) {
	listing, err := c.getContents(ctx, repo, branch, filePath)
	if err != nil {
		return "", domain.FileMetadata{}, withRepo(zerr.Wrap(err, "failed to fetch file"), repo, branch, filePath)
	}
	if listing.file == nil {
		err := zerr.Wrap(domain.ErrRemoteNotFound, "path is a directory")
		return "", domain.FileMetadata{}, withRepo(err, repo, branch, filePath)
	}

	file := listing.file
	meta := domain.FileMetadata{
		SHA:         file.GetSHA(),
		Size:        file.GetSize(),
		Path:        file.GetPath(),
		DownloadURL: file.GetDownloadURL(),
		HTMLURL:     file.GetHTMLURL(),
	}

	if file.GetEncoding() == encodingNone {
		content, err := c.download(ctx, repo, branch, filePath)
		if err != nil {
			return "", domain.FileMetadata{}, withRepo(err, repo, branch, filePath)
		}
		return content, meta, nil
	}

	content, err := file.GetContent()
	if err != nil {
		err = zerr.Wrap(domain.ErrRemoteDecodeFailed, err.Error())
		return "", domain.FileMetadata{}, withRepo(err, repo, branch, filePath)
	}

	return content, meta, nil
}

// download streams a file that is too large for the contents API.
func (c *Client) download(ctx context.Context, repo domain.RepositoryConfig, branch, filePath string) (string, error) {
	api := c.api(repo)
	opts := &gh.RepositoryContentGetOptions{Ref: branch}

	return call(ctx, c, "download_contents", func() (string, *gh.Response, error) {
		rc, resp, err := api.Repositories.DownloadContents(ctx, repo.Owner, repo.Name, filePath, opts)
		if err != nil {
			return "", resp, err
		}
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		if err != nil {
			return "", resp, err
		}
		return string(data), resp, nil
	})
}

// GetFileLastCommit returns the SHA and committer date of the last commit touching filePath.
func (c *Client) GetFileLastCommit(
	ctx context.Context,
	repo domain.RepositoryConfig,
	branch, filePath string,
) (domain.RemoteMetadata, error) {
	api := c.api(repo)
	opts := &gh.CommitsListOptions{
		SHA:         branch,
		Path:        filePath,
		ListOptions: gh.ListOptions{PerPage: 1},
	}

	commits, err := call(ctx, c, "list_commits", func() ([]*gh.RepositoryCommit, *gh.Response, error) {
		return api.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
	})
	if err != nil {
		return domain.RemoteMetadata{}, withRepo(zerr.Wrap(err, "failed to read last commit"), repo, branch, filePath)
	}
	if len(commits) == 0 {
		err := zerr.Wrap(domain.ErrRemoteNotFound, "no commits touch path")
		return domain.RemoteMetadata{}, withRepo(err, repo, branch, filePath)
	}

	commit := commits[0]
	modified := commit.GetCommit().GetCommitter().GetDate().Time
	if modified.IsZero() {
		modified = commit.GetCommit().GetAuthor().GetDate().Time
	}

	return domain.RemoteMetadata{SHA: commit.GetSHA(), LastModified: modified}, nil
}

// FileExists reports whether filePath exists on branch.
func (c *Client) FileExists(
	ctx context.Context,
	repo domain.RepositoryConfig,
	branch, filePath string,
) (bool, error) {
	_, err := c.getContents(ctx, repo, branch, filePath)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrRemoteNotFound):
		return false, nil
	default:
		return false, withRepo(zerr.Wrap(err, "failed to check file"), repo, branch, filePath)
	}
}

func toFileEntry(c *gh.RepositoryContent) domain.FileEntry {
	return domain.FileEntry{
		Path:        c.GetPath(),
		SHA:         c.GetSHA(),
		Size:        c.GetSize(),
		DownloadURL: c.GetDownloadURL(),
		HTMLURL:     c.GetHTMLURL(),
	}
}

func matchesExtension(p string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	name := strings.ToLower(path.Base(p))
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
