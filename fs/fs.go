// Package fs provides filesystem-backed storage for knowledge bases.
//
// Each knowledge base lives in its own directory under the store root:
//
//	<root>/<id>/manifest.json    knowledge base metadata and sources
//	<root>/<id>/pages/<md5>.json harvested pages, keyed by URL hash
//	<root>/<id>/index.json       the persisted chunk index
//
// All metadata writes replace the target file atomically (write a temp file,
// then rename) so a crash mid-write cannot corrupt an existing file. The
// store assumes a single writer at a time per knowledge base.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/knowbase"
)

// Compile-time interface verification.
var (
	_ knowbase.KnowledgeBaseService = (*Store)(nil)
	_ knowbase.PageStore            = (*Store)(nil)
	_ knowbase.IndexStore           = (*Store)(nil)
)

// Store implements knowledge base, page, and index persistence on the local
// filesystem. A Store is an explicit value rooted at a directory; multiple
// stores can coexist for independent roots.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) kbDir(id string) string {
	return filepath.Join(s.root, id)
}

func (s *Store) manifestPath(id string) string {
	return filepath.Join(s.root, id, "manifest.json")
}

func (s *Store) pagesDir(id string) string {
	return filepath.Join(s.root, id, "pages")
}

func (s *Store) indexPath(id string) string {
	return filepath.Join(s.root, id, "index.json")
}

// readManifest loads and parses a knowledge base manifest.
// A missing manifest is ENOTFOUND; an unparsable one is ECORRUPT.
func (s *Store) readManifest(id string) (*knowbase.KnowledgeBase, error) {
	data, err := os.ReadFile(s.manifestPath(id))
	if os.IsNotExist(err) {
		return nil, knowbase.Errorf(knowbase.ENOTFOUND, "knowledge base %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	var kb knowbase.KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, knowbase.Errorf(knowbase.ECORRUPT, "knowledge base %q has an unreadable manifest: %v", id, err)
	}
	return &kb, nil
}

// writeManifest serializes and atomically replaces a manifest. Every mutating
// call rewrites the manifest in full; there are no partial updates.
func (s *Store) writeManifest(kb *knowbase.KnowledgeBase) error {
	data, err := json.MarshalIndent(kb, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.manifestPath(kb.ID), data)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so readers never observe a truncated file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
