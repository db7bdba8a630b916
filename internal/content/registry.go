// Package content resolves tabs to the lines a panel body shows. The layout
// engine only routes tab ids; everything about what a tab displays lives here.
package content

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/muesli/reflow/wordwrap"

	"github.com/atomicstack/tabdeck/internal/workspace"
)

// Source is where a tab's text comes from. A Path takes precedence over Body.
type Source struct {
	Body string
	Path string
}

// Content is the rendered form of a tab.
type Content struct {
	TabID string
	Title string
	Lines []string
	Path  string
}

// Provider renders text for one content type.
type Provider interface {
	Render(tab workspace.Tab, text string, width int) []string
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(tab workspace.Tab, text string, width int) []string

func (f ProviderFunc) Render(tab workspace.Tab, text string, width int) []string {
	return f(tab, text, width)
}

// Registry maps tabs to their sources and content types to providers. It is
// safe for concurrent use since resolution runs off the UI loop.
type Registry struct {
	mu        sync.RWMutex
	sources   map[string]Source
	providers map[workspace.ContentType]Provider
	fallback  Provider
}

// NewRegistry returns a registry with the built-in providers installed.
func NewRegistry() *Registry {
	r := &Registry{
		sources:   make(map[string]Source),
		providers: make(map[workspace.ContentType]Provider),
		fallback:  ProviderFunc(plainLines),
	}
	r.Register(workspace.ContentCode, ProviderFunc(numberedLines))
	r.Register(workspace.ContentDocs, ProviderFunc(wrappedLines))
	r.Register(workspace.ContentChat, ProviderFunc(chatLines))
	r.Register(workspace.ContentTask, ProviderFunc(taskLines))
	return r
}

// Register installs p for ct, replacing any previous provider.
func (r *Registry) Register(ct workspace.ContentType, p Provider) {
	if p == nil {
		return
	}
	r.mu.Lock()
	r.providers[ct] = p
	r.mu.Unlock()
}

// SetSource records where tabID's text comes from.
func (r *Registry) SetSource(tabID string, src Source) {
	r.mu.Lock()
	r.sources[tabID] = src
	r.mu.Unlock()
}

// Source returns the source registered for tabID.
func (r *Registry) Source(tabID string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[tabID]
	return src, ok
}

// Remove forgets tabID.
func (r *Registry) Remove(tabID string) {
	r.mu.Lock()
	delete(r.sources, tabID)
	r.mu.Unlock()
}

// Paths returns the file path of every file-backed tab keyed by tab id.
func (r *Registry) Paths() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string)
	for id, src := range r.sources {
		if src.Path != "" {
			out[id] = src.Path
		}
	}
	return out
}

// TabsForPaths returns the ids of tabs backed by any of paths, sorted.
func (r *Registry) TabsForPaths(paths []string) []string {
	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		want[p] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, src := range r.sources {
		if _, ok := want[src.Path]; ok && src.Path != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Resolve renders tab at width. Tabs without a source get a short placeholder
// rather than an error.
func (r *Registry) Resolve(ctx context.Context, tab workspace.Tab, width int) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	r.mu.RLock()
	src, ok := r.sources[tab.ID]
	provider, found := r.providers[tab.ContentType]
	if !found {
		provider = r.fallback
	}
	r.mu.RUnlock()

	text := placeholder(tab)
	if ok {
		text = src.Body
		if src.Path != "" {
			data, err := os.ReadFile(src.Path)
			if err != nil {
				return Content{}, fmt.Errorf("read %s: %w", src.Path, err)
			}
			text = string(data)
		}
	}
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	return Content{
		TabID: tab.ID,
		Title: tab.Title,
		Lines: provider.Render(tab, text, width),
		Path:  src.Path,
	}, nil
}

func placeholder(tab workspace.Tab) string {
	return fmt.Sprintf("%s\n\n(no content for %s tab %q)", tab.Title, tab.ContentType, tab.ID)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func plainLines(_ workspace.Tab, text string, _ int) []string {
	return splitLines(text)
}

func numberedLines(_ workspace.Tab, text string, _ int) []string {
	lines := splitLines(text)
	digits := len(fmt.Sprint(len(lines)))
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fmt.Sprintf("%*d  %s", digits, i+1, strings.ReplaceAll(line, "\t", "    "))
	}
	return out
}

func wrappedLines(_ workspace.Tab, text string, width int) []string {
	if width <= 0 {
		return splitLines(text)
	}
	return splitLines(wordwrap.String(text, width))
}

func chatLines(_ workspace.Tab, text string, width int) []string {
	var out []string
	for _, line := range splitLines(text) {
		speaker, said, ok := strings.Cut(line, ":")
		if !ok || strings.ContainsAny(speaker, " \t") {
			out = append(out, line)
			continue
		}
		out = append(out, "<"+speaker+"> "+strings.TrimSpace(said))
	}
	if width > 0 {
		return splitLines(wordwrap.String(strings.Join(out, "\n"), width))
	}
	return out
}

func taskLines(_ workspace.Tab, text string, _ int) []string {
	lines := splitLines(text)
	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- [x] "), strings.HasPrefix(trimmed, "- [X] "):
			out[i] = "[x] " + trimmed[6:]
		case strings.HasPrefix(trimmed, "- [ ] "):
			out[i] = "[ ] " + trimmed[6:]
		case strings.HasPrefix(trimmed, "- "):
			out[i] = "[ ] " + trimmed[2:]
		default:
			out[i] = line
		}
	}
	return out
}
