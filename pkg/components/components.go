// pkg/components/components.go
package components

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/toolup-dev/toolup/pkg/transaction"
)

// LedgerPath is where the ledger lives inside an install prefix.
const LedgerPath = "lib/toolup/components.yaml"

// Package is an installable artifact exposing named components.
type Package interface {
	// Components returns the component names in install order.
	Components() []string

	// Install stages one component's files into the transaction and records
	// it in the ledger. The transaction is threaded through and returned.
	Install(c *Components, name string, tx *transaction.Transaction) (*transaction.Transaction, error)
}

// Entry records one installed component and the files it owns, relative to
// the prefix.
type Entry struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
}

type ledger struct {
	Components []Entry `yaml:"components"`
}

// Components is the ledger of installed components for one install prefix.
// It is only ever mutated through an open transaction: Add and Remove stage
// the updated ledger file rather than writing it directly.
type Components struct {
	prefix  string
	entries map[string]Entry
}

// Open reads the ledger for prefix, starting empty when none exists yet.
func Open(prefix string) (*Components, error) {
	c := &Components{prefix: prefix, entries: make(map[string]Entry)}

	data, err := os.ReadFile(filepath.Join(prefix, LedgerPath))
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading components ledger: %w", err)
	}

	var l ledger
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing components ledger: %w", err)
	}
	for _, e := range l.Components {
		c.entries[e.Name] = e
	}
	return c, nil
}

// List returns the installed component names, sorted.
func (c *Components) List() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsInstalled reports whether the named component is recorded in the ledger.
func (c *Components) IsInstalled(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Files returns the file list recorded for a component.
func (c *Components) Files(name string) []string {
	return c.entries[name].Files
}

// Add records a component and its files, staging the updated ledger into the
// transaction.
func (c *Components) Add(name string, files []string, tx *transaction.Transaction) error {
	c.entries[name] = Entry{Name: name, Files: files}
	return c.stage(tx)
}

// Remove drops a component from the ledger, staging removal of its files and
// the updated ledger into the transaction.
func (c *Components) Remove(name string, tx *transaction.Transaction) error {
	entry, ok := c.entries[name]
	if !ok {
		return fmt.Errorf("component %s is not installed", name)
	}
	for _, f := range entry.Files {
		if err := tx.RemovePath(f); err != nil {
			return err
		}
	}
	delete(c.entries, name)
	return c.stage(tx)
}

func (c *Components) stage(tx *transaction.Transaction) error {
	l := ledger{}
	for _, name := range c.List() {
		l.Components = append(l.Components, c.entries[name])
	}
	data, err := yaml.Marshal(&l)
	if err != nil {
		return fmt.Errorf("marshaling components ledger: %w", err)
	}
	return tx.WriteFile(LedgerPath, 0644, bytes.NewReader(data))
}
