//go:build e2e

package e2e_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	gitresBinary string
	apiURL       string
)

// remoteFiles is the content of the fake acme/prompts repository.
var remoteFiles = map[string]string{
	"resources/writer/writer.role.md":                 "# Writer\n",
	"resources/writer/thought/writer.thought.md":      "Think before writing.\n",
	"resources/writer/execution/draft.execution.md":   "Draft, then edit.\n",
	"resources/reviewer/reviewer.role.md":             "# Reviewer\n",
	"resources/reviewer/knowledge/style.knowledge.md": "Use short sentences.\n",
	"resources/assets/logo.png":                       "png",
}

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "gitres-e2e-*")
	if err != nil {
		panic(err)
	}

	gitresBinary = filepath.Join(tmpDir, "gitres")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", gitresBinary, "./cmd/gitres")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build gitres binary: " + err.Error())
	}

	server := httptest.NewServer(newFakeGitHub())
	apiURL = server.URL

	exitCode := m.Run()

	server.Close()
	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("GITRES_GITHUB_API_URL", apiURL)
	env.Setenv("GITRES_GITHUB_TOKEN", "e2e-token")

	binDir := filepath.Dir(gitresBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))
	env.Setenv("XDG_CACHE_HOME", filepath.Join(homeDir, ".cache"))

	return nil
}

type contentJSON struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// newFakeGitHub serves the contents and commits endpoints for remoteFiles.
func newFakeGitHub() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/repos/acme/prompts/contents/", func(w http.ResponseWriter, r *http.Request) {
		p := strings.Trim(strings.TrimPrefix(r.URL.Path, "/repos/acme/prompts/contents/"), "/")

		if content, ok := remoteFiles[p]; ok {
			writeJSON(w, http.StatusOK, contentJSON{
				Type:     "file",
				Name:     path.Base(p),
				Path:     p,
				SHA:      "blob-" + p,
				Size:     len(content),
				Encoding: "base64",
				Content:  base64.StdEncoding.EncodeToString([]byte(content)),
			})
			return
		}

		if listing := list(p); len(listing) > 0 {
			writeJSON(w, http.StatusOK, listing)
			return
		}

		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	})

	mux.HandleFunc("/repos/acme/prompts/commits", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := remoteFiles[r.URL.Query().Get("path")]; !ok {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{{
			"sha": "c0ffee",
			"commit": map[string]any{
				"committer": map[string]string{"date": "2025-02-03T04:05:06Z"},
			},
		}})
	})

	return mux
}

// list returns the immediate children of dir.
func list(dir string) []contentJSON {
	seen := map[string]bool{}
	var out []contentJSON

	for p, content := range remoteFiles {
		rest, ok := strings.CutPrefix(p, dir+"/")
		if dir == "" {
			rest, ok = p, true
		}
		if !ok {
			continue
		}

		name, _, isDir := strings.Cut(rest, "/")
		child := strings.TrimPrefix(dir+"/"+name, "/")
		if seen[child] {
			continue
		}
		seen[child] = true

		entry := contentJSON{Type: "file", Name: name, Path: child, SHA: "blob-" + child, Size: len(content)}
		if isDir {
			entry = contentJSON{Type: "dir", Name: name, Path: child, SHA: "tree-" + child}
		}
		out = append(out, entry)
	}

	slices.SortFunc(out, func(a, b contentJSON) int { return strings.Compare(a.Path, b.Path) })
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
