package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tabdeck/internal/app"
	"github.com/atomicstack/tabdeck/internal/content"
	"github.com/atomicstack/tabdeck/internal/workspace"
)

type layoutFile struct {
	Panels []panelFile `yaml:"panels"`
}

type panelFile struct {
	ID     string    `yaml:"id"`
	Active string    `yaml:"active"`
	Tabs   []tabFile `yaml:"tabs"`
}

type tabFile struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Type  string `yaml:"type"`
	Path  string `yaml:"path"`
	Body  string `yaml:"body"`
}

// LoadLayout reads the seed layout at path. An empty path returns the
// built-in layout. Relative tab paths resolve against the file's directory.
func LoadLayout(path string) (app.Seed, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return app.Seed{}, fmt.Errorf("read layout: %w", err)
	}
	seed, err := ParseLayout(data, filepath.Dir(path))
	if err != nil {
		return app.Seed{}, fmt.Errorf("%s: %w", path, err)
	}
	seed.Source = path
	return seed, nil
}

// ParseLayout decodes a YAML layout document. Unknown keys are rejected.
func ParseLayout(data []byte, baseDir string) (app.Seed, error) {
	var doc layoutFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return app.Seed{}, fmt.Errorf("parse layout: %w", err)
	}
	if len(doc.Panels) == 0 {
		return app.Seed{}, fmt.Errorf("%w: layout declares no panels", workspace.ErrInvalidLayout)
	}

	seed := app.Seed{Sources: make(map[string]content.Source)}
	for i, p := range doc.Panels {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = fmt.Sprintf("panel-%d", i+1)
		}
		spec := workspace.PanelSpec{ID: id, Active: strings.TrimSpace(p.Active)}
		for _, t := range p.Tabs {
			tabID := strings.TrimSpace(t.ID)
			if tabID == "" {
				return app.Seed{}, fmt.Errorf("%w: tab without id in panel %q", workspace.ErrInvalidLayout, id)
			}
			spec.Tabs = append(spec.Tabs, workspace.TabSpec{
				ID:          tabID,
				Title:       t.Title,
				ContentType: workspace.ParseContentType(t.Type),
			})
			src := content.Source{Body: t.Body}
			if t.Path != "" {
				src.Path = t.Path
				if !filepath.IsAbs(src.Path) && baseDir != "" {
					src.Path = filepath.Join(baseDir, src.Path)
				}
			}
			if src.Body != "" || src.Path != "" {
				seed.Sources[tabID] = src
			}
		}
		seed.Panels = append(seed.Panels, spec)
	}
	if _, err := workspace.New(seed.Panels...); err != nil {
		return app.Seed{}, err
	}
	return seed, nil
}

// DefaultLayout is shown when no layout file is given.
func DefaultLayout() app.Seed {
	return app.Seed{
		Source: "builtin",
		Panels: []workspace.PanelSpec{
			{
				ID: "left",
				Tabs: []workspace.TabSpec{
					{ID: "readme", Title: "README", ContentType: workspace.ContentDocs},
					{ID: "main", Title: "main.go", ContentType: workspace.ContentCode},
				},
			},
			{
				ID: "right",
				Tabs: []workspace.TabSpec{
					{ID: "chat", Title: "chat", ContentType: workspace.ContentChat},
					{ID: "todo", Title: "todo", ContentType: workspace.ContentTask},
				},
			},
		},
		Sources: map[string]content.Source{
			"readme": {Body: "Drag a tab along its bar to reorder it, onto another panel to move it, or to the right edge to open a new panel.\n\nctrl+p switches tabs, ctrl+w closes one, ctrl+n opens a scratch tab."},
			"main":   {Body: "package main\n\nfunc main() {\n\tprintln(\"hello\")\n}\n"},
			"chat":   {Body: "ana: did the split land?\nbo: moved it to the right panel\n"},
			"todo":   {Body: "- [x] reorder tabs\n- [ ] move tabs across panels\n- [ ] close the last tab of a panel\n"},
		},
	}
}
