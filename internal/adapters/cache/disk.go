package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/zerr"
)

const recordExt = ".json"

// record is a persisted cache file as seen in a directory listing.
type record struct {
	hash    string
	path    string
	size    int64
	modTime time.Time
}

// keyHash names the persisted record of key.
func keyHash(key domain.CacheKey) string {
	d := xxhash.New()
	for i, part := range []string{key.Owner, key.Repo, key.Branch, key.FilePath} {
		if i > 0 {
			_, _ = d.WriteString("\x00")
		}
		_, _ = d.WriteString(part)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

func recordPath(dir, hash string) string {
	return filepath.Join(dir, hash+recordExt)
}

func lockPath(dir string) string {
	return filepath.Join(dir, domain.LockFileName)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		err = zerr.Wrap(errors.Join(domain.ErrCacheCreateFailed, err), "failed to open cache")
		return zerr.With(err, "dir", dir)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// readEntry decodes the record at path. Undecodable or incomplete records
// are reported as domain.ErrCorruptCacheEntry.
func readEntry(path string) (*domain.CacheEntry, error) {
	//nolint:gosec // Path is constructed from the cache directory and a hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheReadFailed, err), "path", path)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCorruptCacheEntry, err.Error()), "path", path)
	}
	if entry.Owner == "" || entry.Repo == "" || entry.FilePath == "" || entry.ExpiresAt.IsZero() {
		return nil, zerr.With(zerr.Wrap(domain.ErrCorruptCacheEntry, "missing required fields"), "path", path)
	}

	return &entry, nil
}

// writeEntry persists entry atomically and stamps the record with writeTime.
func writeEntry(dir, hash string, entry *domain.CacheEntry, writeTime time.Time) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to encode cache entry")
	}

	tmp, err := os.CreateTemp(dir, hash+".*.tmp")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "dir", dir)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, cause), "path", tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup(err)
	}
	if err := os.Chtimes(tmpName, writeTime, writeTime); err != nil {
		return cleanup(err)
	}
	if err := os.Rename(tmpName, recordPath(dir, hash)); err != nil {
		return cleanup(err)
	}

	return nil
}

func removeRecord(dir, hash string) error {
	path := recordPath(dir, hash)
	if err := os.Remove(path); err != nil && !isNotExist(err) {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", path)
	}
	return nil
}

// listRecords returns the persisted records of dir. Records removed concurrently are skipped.
func listRecords(dir string) ([]record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrCacheReadFailed, err), "dir", dir)
	}

	records := make([]record, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		records = append(records, record{
			hash:    strings.TrimSuffix(name, recordExt),
			path:    filepath.Join(dir, name),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}
	return records, nil
}
