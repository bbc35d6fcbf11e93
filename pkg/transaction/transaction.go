// pkg/transaction/transaction.go
package transaction

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toolup-dev/toolup/pkg/fsutil"
	"github.com/toolup-dev/toolup/pkg/notify"
	"github.com/toolup-dev/toolup/pkg/temp"
)

// Transaction accumulates filesystem operations against one install prefix
// and applies them all at once on Commit. Staged content lives in a
// disposable workspace until then, so a transaction that is closed without
// being committed leaves the prefix exactly as it was.
type Transaction struct {
	prefix    string
	staging   *temp.Dir
	notify    notify.Sink
	ops       []operation
	index     map[string]int
	committed bool
}

type opKind int

const (
	opWriteFile opKind = iota
	opMakeDir
	opSymlink
	opRemovePath
)

type operation struct {
	kind   opKind
	rel    string
	staged string
	mode   fs.FileMode
}

// New creates a transaction against prefix, staging into a fresh workspace
// from tmp.
func New(prefix string, tmp *temp.Cfg, n notify.Sink) (*Transaction, error) {
	staging, err := tmp.NewDirectory("tx")
	if err != nil {
		return nil, err
	}
	return &Transaction{
		prefix:  prefix,
		staging: staging,
		notify:  n,
		index:   make(map[string]int),
	}, nil
}

// Prefix returns the install prefix this transaction targets.
func (t *Transaction) Prefix() string {
	return t.prefix
}

// WriteFile stages the contents of r to be written at rel (relative to the
// prefix) with the given mode. A second write to the same path replaces the
// first.
func (t *Transaction) WriteFile(rel string, mode fs.FileMode, r io.Reader) error {
	if err := checkRel(rel); err != nil {
		return err
	}
	staged := filepath.Join(t.staging.Path, "files", rel)
	if err := os.MkdirAll(filepath.Dir(staged), 0755); err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}
	f, err := os.OpenFile(staged, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("staging %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}
	t.record(operation{kind: opWriteFile, rel: rel, staged: staged, mode: mode})
	return nil
}

// AddDir stages creation of a directory at rel.
func (t *Transaction) AddDir(rel string) error {
	if err := checkRel(rel); err != nil {
		return err
	}
	t.record(operation{kind: opMakeDir, rel: rel})
	return nil
}

// AddSymlink stages creation of a symlink at rel pointing to linkTarget.
func (t *Transaction) AddSymlink(rel, linkTarget string) error {
	if err := checkRel(rel); err != nil {
		return err
	}
	t.record(operation{kind: opSymlink, rel: rel, staged: linkTarget})
	return nil
}

// RemovePath stages recursive removal of rel.
func (t *Transaction) RemovePath(rel string) error {
	if err := checkRel(rel); err != nil {
		return err
	}
	t.record(operation{kind: opRemovePath, rel: rel})
	return nil
}

// Commit applies every staged operation against the prefix, in order. This
// is the only point at which the prefix is mutated.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}
	for _, op := range t.ops {
		target := filepath.Join(t.prefix, op.rel)
		switch op.kind {
		case opWriteFile:
			if err := fsutil.CopyFile(op.staged, target, op.mode); err != nil {
				return fmt.Errorf("committing %s: %w", op.rel, err)
			}
		case opMakeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("committing %s: %w", op.rel, err)
			}
		case opSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("committing %s: %w", op.rel, err)
			}
			os.Remove(target)
			if err := os.Symlink(op.staged, target); err != nil {
				return fmt.Errorf("committing symlink %s: %w", op.rel, err)
			}
		case opRemovePath:
			if err := os.RemoveAll(target); err != nil {
				return fmt.Errorf("committing removal of %s: %w", op.rel, err)
			}
		}
	}
	t.committed = true
	return nil
}

// Close releases the staging workspace. If Commit was never called the
// prefix is untouched. Safe to defer alongside an explicit Commit.
func (t *Transaction) Close() error {
	return t.staging.Close()
}

// record replaces any earlier operation on the same path so that the last
// staged state wins.
func (t *Transaction) record(op operation) {
	if i, ok := t.index[op.rel]; ok {
		t.ops[i] = op
		return
	}
	t.index[op.rel] = len(t.ops)
	t.ops = append(t.ops, op)
}

// checkRel rejects paths that would escape the prefix.
func checkRel(rel string) error {
	if rel == "" || filepath.IsAbs(rel) {
		return fmt.Errorf("invalid transaction path %q", rel)
	}
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid transaction path %q", rel)
	}
	return nil
}
