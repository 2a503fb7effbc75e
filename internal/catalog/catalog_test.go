package catalog

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"exact id", "projects", "projects", true},
		{"id is case-insensitive", "PROJECTS", "projects", true},
		{"alias", "bio", "about-me", true},
		{"alias is case-insensitive", "Shell", TerminalID, true},
		{"surrounding space", "  books ", "library", true},
		{"unknown", "nonexistentapp", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Resolve(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewRejectsDuplicateAlias(t *testing.T) {
	apps := []App{
		{ID: "a", Aliases: []string{"x"}},
		{ID: "b", Aliases: []string{"X"}},
	}
	_, err := New(apps, nil, nil)
	if !errors.Is(err, ErrDuplicateAlias) {
		t.Fatalf("expected ErrDuplicateAlias, got %v", err)
	}
}

func TestNewRejectsAliasShadowingID(t *testing.T) {
	apps := []App{
		{ID: "a"},
		{ID: "b", Aliases: []string{"a"}},
	}
	_, err := New(apps, nil, nil)
	if !errors.Is(err, ErrDuplicateAlias) {
		t.Fatalf("expected ErrDuplicateAlias, got %v", err)
	}
}

func TestNewRejectsBadIDs(t *testing.T) {
	if _, err := New([]App{{ID: " "}}, nil, nil); !errors.Is(err, ErrEmptyID) {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}
	if _, err := New([]App{{ID: "a"}, {ID: "A"}}, nil, nil); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	apps := []App{{ID: "a", Aliases: []string{"UPPER"}}}
	if _, err := New(apps, nil, nil); err != nil {
		t.Fatal(err)
	}
	if apps[0].Aliases[0] != "UPPER" {
		t.Errorf("caller's alias slice was modified: %q", apps[0].Aliases[0])
	}
}

func TestReadFile(t *testing.T) {
	c := Default()

	content, ok := c.ReadFile("reading.txt")
	if !ok {
		t.Fatal("expected Reading.txt to be readable case-insensitively")
	}
	if content == "" {
		t.Error("expected non-empty content")
	}

	if _, ok := c.ReadFile("missing.txt"); ok {
		t.Error("expected missing.txt to be unreadable")
	}
}

func TestNamesDeduplicates(t *testing.T) {
	c := Default()
	names := c.Names()

	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate name %q", n)
		}
		seen[n] = true
	}

	for _, id := range c.IDs() {
		if !seen[id] {
			t.Errorf("missing id %q", id)
		}
	}
	if !seen["bio"] || !seen["term"] {
		t.Error("expected aliases in Names()")
	}
	if names[0] != TerminalID {
		t.Errorf("expected identifiers first, got %q", names[0])
	}
}
