// Package fixture loads correspondence fixtures: YAML documents carrying a
// marker sequence, optional display text for the two panes, and optional
// expected-result checks. A fixture stands in for the external generator
// that would emit markers from real source and derived text.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/weft/internal/weave"
)

// Fixture is a parsed correspondence document ready for querying.
type Fixture struct {
	Name        string
	Description string
	Source      string
	Derived     string
	Sequence    *weave.Sequence
	Checks      []Check
}

// Check is one expected-result entry from the fixture's checks list. Want
// holds derived regions for a forward query, source regions when Back is
// set.
type Check struct {
	Query weave.Region
	Back  bool
	Want  []weave.Region
}

// document mirrors the YAML layout before markers and checks are built.
type document struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Source      string      `yaml:"source"`
	Derived     string      `yaml:"derived"`
	Markers     []markerDef `yaml:"markers"`
	Checks      []checkDef  `yaml:"checks"`
}

// markerDef is one markers entry. Exactly one field may be set.
type markerDef struct {
	Token string `yaml:"token"` // source region, "L:C-L:C"
	Open  string `yaml:"open"`  // derived boundary, "L:C"
	Close string `yaml:"close"` // derived boundary, "L:C"
	Gap   *int   `yaml:"gap"`   // exclusion depth
}

type checkDef struct {
	Query string   `yaml:"query"`
	Back  bool     `yaml:"back"`
	Want  []string `yaml:"want"`
}

// Load reads and parses a fixture file. A fixture without a name takes the
// file's base name.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own command line
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Parse builds a fixture from YAML content, validating the marker sequence.
func Parse(data []byte) (*Fixture, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if len(doc.Markers) == 0 {
		return nil, fmt.Errorf("fixture has no markers")
	}

	markers := make([]weave.Marker, len(doc.Markers))
	for i, def := range doc.Markers {
		m, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
		markers[i] = m
	}

	seq, err := weave.NewSequence(markers)
	if err != nil {
		return nil, err
	}

	checks := make([]Check, 0, len(doc.Checks))
	for i, def := range doc.Checks {
		c, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("check %d: %w", i, err)
		}
		checks = append(checks, c)
	}

	return &Fixture{
		Name:        doc.Name,
		Description: doc.Description,
		Source:      doc.Source,
		Derived:     doc.Derived,
		Sequence:    seq,
		Checks:      checks,
	}, nil
}

func (d markerDef) build() (weave.Marker, error) {
	set := 0
	for _, field := range []string{d.Token, d.Open, d.Close} {
		if field != "" {
			set++
		}
	}
	if d.Gap != nil {
		set++
	}
	if set != 1 {
		return weave.Marker{}, fmt.Errorf("need exactly one of token, open, close or gap")
	}

	switch {
	case d.Token != "":
		r, err := ParseRegion(d.Token)
		if err != nil {
			return weave.Marker{}, fmt.Errorf("token: %w", err)
		}
		return weave.Token(r), nil
	case d.Open != "":
		at, err := ParseLocation(d.Open)
		if err != nil {
			return weave.Marker{}, fmt.Errorf("open: %w", err)
		}
		return weave.Open(at), nil
	case d.Close != "":
		at, err := ParseLocation(d.Close)
		if err != nil {
			return weave.Marker{}, fmt.Errorf("close: %w", err)
		}
		return weave.Close(at), nil
	default:
		return weave.Gap(*d.Gap), nil
	}
}

func (d checkDef) build() (Check, error) {
	if d.Query == "" {
		return Check{}, fmt.Errorf("query is required")
	}
	query, err := ParseRegion(d.Query)
	if err != nil {
		return Check{}, fmt.Errorf("query: %w", err)
	}
	if len(d.Want) == 0 {
		return Check{}, fmt.Errorf("want is required")
	}
	want := make([]weave.Region, len(d.Want))
	for i, w := range d.Want {
		r, err := ParseRegion(w)
		if err != nil {
			return Check{}, fmt.Errorf("want %d: %w", i, err)
		}
		want[i] = r
	}
	return Check{Query: query, Back: d.Back, Want: want}, nil
}
