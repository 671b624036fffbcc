package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/ui/output"
	"go.trai.ch/gitres/internal/ui/style"
	"golang.org/x/term"
)

const timeLayout = "2006-01-02 15:04:05"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w, termenv.WithProfile(output.ColorProfile()))
}

// renderStats writes a human-readable summary of the cache, newest entries first.
func renderStats(w io.Writer, r *lipgloss.Renderer, stats domain.CacheStats) error {
	title := style.Title.Renderer(r)
	label := style.Label.Renderer(r)
	value := style.Value.Renderer(r)
	muted := style.Muted.Renderer(r)

	state := "enabled"
	if !stats.Enabled {
		state = "disabled"
	}

	var b strings.Builder
	b.WriteString(title.Render("Content cache") + " " + muted.Render("("+state+")") + "\n")

	row := func(name, v string) {
		b.WriteString("  " + label.Render(fmt.Sprintf("%-16s", name)) + value.Render(v) + "\n")
	}
	row("Memory entries", fmt.Sprint(stats.MemoryCache.Size))
	row("Disk entries", fmt.Sprint(stats.DiskCache.Size))
	row("Disk usage", humanize.Bytes(uint64(max(stats.DiskCache.TotalBytes, 0))))

	if len(stats.DiskCache.Items) > 0 {
		width := 0
		for _, item := range stats.DiskCache.Items {
			width = max(width, len(item.Key))
		}

		b.WriteString("\n" + title.Render("Entries") + "\n")
		for _, item := range stats.DiskCache.Items {
			b.WriteString("  " + fmt.Sprintf("%-*s", width, item.Key) + "  " +
				value.Render(fmt.Sprintf("%8s", humanize.Bytes(uint64(max(item.Size, 0))))) + "  " +
				muted.Render(item.WriteTime.UTC().Format(timeLayout)) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
