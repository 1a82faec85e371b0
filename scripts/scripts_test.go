// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package scripts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbflux/dbflux/scripts"
)

func TestCreateFileAndFolder(t *testing.T) {
	dir, err := scripts.New(t.TempDir())
	require.NoError(t, err)

	folderPath, err := dir.CreateFolder("", "project-a")
	require.NoError(t, err)
	info, err := os.Stat(folderPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	filePath, err := dir.CreateFile(folderPath, "init", "sql")
	require.NoError(t, err)
	assert.FileExists(t, filePath)
	assert.Equal(t, "init.sql", filepath.Base(filePath))

	entries := dir.Entries()
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Children, 1)
}

func TestRenameAndDelete(t *testing.T) {
	dir, err := scripts.New(t.TempDir())
	require.NoError(t, err)

	path, err := dir.CreateFile("", "old", "sql")
	require.NoError(t, err)
	require.Len(t, dir.Entries(), 1)

	newPath, err := dir.Rename(path, "new.sql")
	require.NoError(t, err)
	assert.NoFileExists(t, path)
	assert.FileExists(t, newPath)
	require.Len(t, dir.Entries(), 1)

	require.NoError(t, dir.Delete(newPath))
	assert.Empty(t, dir.Entries())
}

func TestImport(t *testing.T) {
	dir, err := scripts.New(t.TempDir())
	require.NoError(t, err)

	extDir := t.TempDir()
	source := filepath.Join(extDir, "my_query.sql")
	require.NoError(t, os.WriteFile(source, []byte("SELECT 1;"), 0o644))

	imported, err := dir.Import(source, "")
	require.NoError(t, err)
	assert.FileExists(t, imported)
	contents, err := os.ReadFile(imported)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", string(contents))
}

func TestIgnoresUnrecognizedExtensions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "query.sql"), []byte("SELECT 1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "image.png"), []byte{0}, 0o644))

	dir, err := scripts.New(root)
	require.NoError(t, err)

	entries := dir.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "query.sql", entries[0].Name)
}

func TestRejectsEscapingPaths(t *testing.T) {
	dir, err := scripts.New(t.TempDir())
	require.NoError(t, err)

	_, err = dir.CreateFile("/tmp", "evil", "sql")
	assert.Error(t, err)
}

func TestFilterEntries(t *testing.T) {
	entries := []scripts.Entry{
		{Path: "/a/setup.sql", Name: "setup.sql"},
		{
			Path:     "/a/migrations",
			Name:     "migrations",
			IsFolder: true,
			Children: []scripts.Entry{
				{Path: "/a/migrations/001_init.sql", Name: "001_init.sql"},
			},
		},
	}

	filtered := scripts.FilterEntries(entries, "init")
	require.Len(t, filtered, 1)
	assert.Equal(t, "migrations", filtered[0].Name)
	require.Len(t, filtered[0].Children, 1)
	assert.Equal(t, "001_init.sql", filtered[0].Children[0].Name)

	assert.Equal(t, entries, scripts.FilterEntries(entries, ""))
}
