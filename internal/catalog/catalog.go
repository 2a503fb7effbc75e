// Package catalog holds the static application catalog, external shortcuts and
// the virtual filesystem consumed by the desktop and its terminal.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// TerminalID is the identifier of the built-in terminal application.
const TerminalID = "obvterm"

var (
	// ErrEmptyID is returned when an application has no identifier.
	ErrEmptyID = errors.New("application id is empty")
	// ErrDuplicateID is returned when two applications share an identifier.
	ErrDuplicateID = errors.New("duplicate application id")
	// ErrDuplicateAlias is returned when an alias maps to more than one application.
	ErrDuplicateAlias = errors.New("alias maps to more than one application")
)

// App is a window-backed application declared at startup.
type App struct {
	ID      string   `toml:"id"`
	Title   string   `toml:"title"`
	Aliases []string `toml:"aliases,omitempty"`
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Body    string   `toml:"body,omitempty"`
}

// Shortcut is a desktop icon that points at an external location.
type Shortcut struct {
	Label string `toml:"label"`
	URL   string `toml:"url"`
}

// File is an entry of the read-only virtual filesystem.
type File struct {
	Name    string `toml:"name"`
	Content string `toml:"content"`
}

// Catalog is the immutable set of apps, shortcuts and files.
type Catalog struct {
	apps      []App
	shortcuts []Shortcut
	files     []File
	byID      map[string]int
	byAlias   map[string]string
}

// New validates the given entries and builds a Catalog.
// Identifiers and aliases are matched case-insensitively, so they are stored lowercased.
func New(apps []App, shortcuts []Shortcut, files []File) (*Catalog, error) {
	c := &Catalog{
		apps:      make([]App, 0, len(apps)),
		shortcuts: slices.Clone(shortcuts),
		files:     slices.Clone(files),
		byID:      make(map[string]int, len(apps)),
		byAlias:   make(map[string]string),
	}

	for _, app := range apps {
		app.ID = strings.ToLower(strings.TrimSpace(app.ID))
		if app.ID == "" {
			return nil, ErrEmptyID
		}
		if _, ok := c.byID[app.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, app.ID)
		}
		if app.Title == "" {
			app.Title = app.ID
		}
		app.Aliases = slices.Clone(app.Aliases)
		c.byID[app.ID] = len(c.apps)
		c.apps = append(c.apps, app)
	}

	for _, app := range c.apps {
		for i, alias := range app.Aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			app.Aliases[i] = alias
			if owner, ok := c.byAlias[alias]; ok && owner != app.ID {
				return nil, fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateAlias, alias, owner, app.ID)
			}
			if _, ok := c.byID[alias]; ok && alias != app.ID {
				return nil, fmt.Errorf("%w: %q shadows application %s", ErrDuplicateAlias, alias, alias)
			}
			c.byAlias[alias] = app.ID
		}
	}

	return c, nil
}

// Apps returns the applications in declaration order.
func (c *Catalog) Apps() []App {
	return slices.Clone(c.apps)
}

// IDs returns the application identifiers in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.apps))
	for i, app := range c.apps {
		ids[i] = app.ID
	}
	return ids
}

// App looks up an application by exact identifier.
func (c *Catalog) App(id string) (App, bool) {
	i, ok := c.byID[id]
	if !ok {
		return App{}, false
	}
	return c.apps[i], true
}

// Shortcuts returns the external shortcuts.
func (c *Catalog) Shortcuts() []Shortcut {
	return slices.Clone(c.shortcuts)
}

// Files returns the virtual files.
func (c *Catalog) Files() []File {
	return slices.Clone(c.files)
}

// FileNames returns the virtual filenames in declaration order.
func (c *Catalog) FileNames() []string {
	names := make([]string, len(c.files))
	for i, f := range c.files {
		names[i] = f.Name
	}
	return names
}

// ReadFile returns the content of the virtual file whose name matches case-insensitively.
func (c *Catalog) ReadFile(name string) (string, bool) {
	for _, f := range c.files {
		if strings.EqualFold(f.Name, name) {
			return f.Content, true
		}
	}
	return "", false
}

// Resolve maps a user-typed name to an application identifier.
// An exact identifier match wins over the alias table.
func (c *Catalog) Resolve(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	if _, ok := c.byID[name]; ok {
		return name, true
	}
	id, ok := c.byAlias[name]
	return id, ok
}

// Names returns every identifier followed by its aliases, deduplicated, in catalog order.
func (c *Catalog) Names() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			names = append(names, s)
		}
	}
	for _, app := range c.apps {
		add(app.ID)
	}
	for _, app := range c.apps {
		add(app.ID)
		for _, alias := range app.Aliases {
			add(alias)
		}
	}
	return names
}
