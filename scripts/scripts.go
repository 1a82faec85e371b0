// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package scripts manages the centralized scripts directory every DBFlux
// install keeps under the user's data dir: a tree of query files (one
// recognized extension per supported query language) that the embedding
// application lists, edits, and organizes. Grounded on
// original_source/crates/dbflux_core/src/scripts_directory.rs.
package scripts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dbflux/dbflux/dberr"
)

// recognizedExtensions are the extensions dbkind.QueryLanguage recognizes,
// lower-cased, without the leading dot.
var recognizedExtensions = []string{
	"sql", "js", "mongodb", "redis", "red", "cypher", "cyp", "influxql", "flux", "cql",
}

// AllExtensions returns every recognized script extension, for file-picker
// filters.
func AllExtensions() []string {
	out := make([]string, len(recognizedExtensions))
	copy(out, recognizedExtensions)
	return out
}

func isRecognizedExtension(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, e := range recognizedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Entry is one node in the scanned script tree: either a File (leaf, one
// recognized extension) or a Folder (with scanned Children).
type Entry struct {
	Path      string
	Name      string
	Extension string
	IsFolder  bool
	Children  []Entry
}

// Directory manages the centralized scripts directory, scanning the
// filesystem on demand and caching the resulting tree between refreshes.
type Directory struct {
	root    string
	entries []Entry
}

// New opens (creating if necessary) the scripts directory rooted at root
// and performs an initial scan.
func New(root string) (*Directory, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, dberr.Newf(dberr.IoError, "scripts: create directory %s: %v", root, err)
	}
	d := &Directory{root: root}
	d.Refresh()
	return d, nil
}

// RootPath returns the directory's root.
func (d *Directory) RootPath() string { return d.root }

// Entries returns the last-scanned tree.
func (d *Directory) Entries() []Entry { return d.entries }

// IsEmpty reports whether the last scan found no entries.
func (d *Directory) IsEmpty() bool { return len(d.entries) == 0 }

// Refresh re-scans the filesystem and replaces the cached tree.
func (d *Directory) Refresh() {
	d.entries = scanDirectory(d.root)
}

func scanDirectory(dir string) []Entry {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var folders, files []Entry
	for _, item := range items {
		name := item.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if item.IsDir() {
			folders = append(folders, Entry{
				Path:     path,
				Name:     name,
				IsFolder: true,
				Children: scanDirectory(path),
			})
			continue
		}

		if isRecognizedExtension(path) {
			files = append(files, Entry{
				Path:      path,
				Name:      name,
				Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
			})
		}
	}

	sort.Slice(folders, func(i, j int) bool { return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name) })
	sort.Slice(files, func(i, j int) bool { return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name) })

	return append(folders, files...)
}

// confine reports whether path is root itself or lies under it.
func confine(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && rel != "..")
}

func (d *Directory) checkConfined(path, label string) error {
	if !confine(d.root, path) {
		return dberr.Newf(dberr.PermissionDenied, "scripts: %s is outside scripts root", label)
	}
	return nil
}

// CreateFile creates an empty script file under parent (or the root, if
// parent is empty) and returns its full path. name may already carry an
// extension; otherwise extension is appended.
func (d *Directory) CreateFile(parent, name, extension string) (string, error) {
	dir := d.root
	if parent != "" {
		dir = parent
	}
	if err := d.checkConfined(dir, "target directory"); err != nil {
		return "", err
	}

	filename := name
	if !strings.Contains(name, ".") {
		filename = fmt.Sprintf("%s.%s", name, extension)
	}

	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err == nil {
		return "", dberr.Newf(dberr.ConstraintViolation, "scripts: file already exists: %s", filename)
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return "", dberr.Newf(dberr.IoError, "scripts: write %s: %v", path, err)
	}
	d.Refresh()
	return path, nil
}

// CreateFolder creates a subdirectory under parent (or the root) and
// returns its full path.
func (d *Directory) CreateFolder(parent, name string) (string, error) {
	dir := d.root
	if parent != "" {
		dir = parent
	}
	if err := d.checkConfined(dir, "target directory"); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", dberr.Newf(dberr.ConstraintViolation, "scripts: folder already exists: %s", name)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", dberr.Newf(dberr.IoError, "scripts: mkdir %s: %v", path, err)
	}
	d.Refresh()
	return path, nil
}

// Rename renames a file or folder in place, returning the new path.
func (d *Directory) Rename(oldPath, newName string) (string, error) {
	if err := d.checkConfined(oldPath, "path"); err != nil {
		return "", err
	}

	parent := filepath.Dir(oldPath)
	newPath := filepath.Join(parent, newName)
	if _, err := os.Stat(newPath); err == nil {
		return "", dberr.Newf(dberr.ConstraintViolation, "scripts: already exists: %s", newName)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return "", dberr.Newf(dberr.IoError, "scripts: rename %s: %v", oldPath, err)
	}
	d.Refresh()
	return newPath, nil
}

// Delete removes a file, or a folder and everything beneath it.
func (d *Directory) Delete(path string) error {
	if err := d.checkConfined(path, "path"); err != nil {
		return err
	}
	if filepath.Clean(path) == filepath.Clean(d.root) {
		return dberr.New(dberr.PermissionDenied, "scripts: cannot delete scripts root")
	}

	info, err := os.Stat(path)
	if err != nil {
		return dberr.Newf(dberr.ObjectNotFound, "scripts: %s: %v", path, err)
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return dberr.Newf(dberr.IoError, "scripts: delete %s: %v", path, err)
	}
	d.Refresh()
	return nil
}

// Move relocates source into targetDir, returning its new path. A no-op
// (returning source unchanged) if source is already directly inside
// targetDir.
func (d *Directory) Move(source, targetDir string) (string, error) {
	if err := d.checkConfined(source, "source"); err != nil {
		return "", err
	}
	if err := d.checkConfined(targetDir, "target"); err != nil {
		return "", err
	}
	if filepath.Clean(source) == filepath.Clean(d.root) {
		return "", dberr.New(dberr.PermissionDenied, "scripts: cannot move scripts root")
	}

	if info, err := os.Stat(source); err == nil && info.IsDir() && confine(source, targetDir) {
		return "", dberr.New(dberr.PermissionDenied, "scripts: cannot move a folder into itself")
	}

	if filepath.Dir(source) == filepath.Clean(targetDir) {
		return source, nil
	}

	dest := filepath.Join(targetDir, filepath.Base(source))
	if _, err := os.Stat(dest); err == nil {
		return "", dberr.Newf(dberr.ConstraintViolation, "scripts: already exists: %s", dest)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", dberr.Newf(dberr.IoError, "scripts: mkdir %s: %v", targetDir, err)
	}
	if err := os.Rename(source, dest); err != nil {
		return "", dberr.Newf(dberr.IoError, "scripts: move %s: %v", source, err)
	}
	d.Refresh()
	return dest, nil
}

// Import copies an external file into the scripts directory (or a
// subfolder of it), returning the new path.
func (d *Directory) Import(source, targetDir string) (string, error) {
	dir := d.root
	if targetDir != "" {
		dir = targetDir
	}
	if err := d.checkConfined(dir, "target directory"); err != nil {
		return "", err
	}

	dest := filepath.Join(dir, filepath.Base(source))
	if _, err := os.Stat(dest); err == nil {
		return "", dberr.Newf(dberr.ConstraintViolation, "scripts: file already exists: %s", filepath.Base(source))
	}

	if err := copyFile(source, dest); err != nil {
		return "", dberr.Newf(dberr.IoError, "scripts: import %s: %v", source, err)
	}
	d.Refresh()
	return dest, nil
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// FilterEntries keeps only the entries (and their ancestor folders) whose
// name contains query, case-insensitively. An empty query returns entries
// unchanged.
func FilterEntries(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}
	lower := strings.ToLower(query)

	var out []Entry
	for _, e := range entries {
		if filtered, ok := filterEntry(e, lower); ok {
			out = append(out, filtered)
		}
	}
	return out
}

func filterEntry(e Entry, lowerQuery string) (Entry, bool) {
	if !e.IsFolder {
		if strings.Contains(strings.ToLower(e.Name), lowerQuery) {
			return e, true
		}
		return Entry{}, false
	}

	var children []Entry
	for _, c := range e.Children {
		if filtered, ok := filterEntry(c, lowerQuery); ok {
			children = append(children, filtered)
		}
	}

	if strings.Contains(strings.ToLower(e.Name), lowerQuery) || len(children) > 0 {
		e.Children = children
		return e, true
	}
	return Entry{}, false
}
