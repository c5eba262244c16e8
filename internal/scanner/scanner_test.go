package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/readmegen/internal/logging"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))
}

func TestScan_BasicProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt")
	writeFile(t, root, "src/main.py")
	writeFile(t, root, "test_main.py")
	writeFile(t, root, "Dockerfile")

	res, err := New(nil).Scan(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, res.Summary)

	s := res.Summary
	assert.True(t, s.Local)
	assert.Equal(t, 4, s.FileCount)
	assert.Equal(t, map[string]int{".txt": 1, ".py": 2}, s.Languages)
	assert.True(t, s.HasDependencyManifest)
	assert.True(t, s.HasContainerDefinition)
	assert.True(t, s.HasTests)
	assert.False(t, s.HasPackageManifest)
	assert.Contains(t, s.SampleDirectories, "src")
	assert.Empty(t, res.Skipped)
}

func TestScan_PrunesDenyList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js")
	writeFile(t, root, "node_modules/pkg/package.json")
	writeFile(t, root, "node_modules/pkg/index.js")
	writeFile(t, root, ".git/HEAD")
	writeFile(t, root, "__pycache__/mod.pyc")

	res, err := New(nil).Scan(context.Background(), root)
	require.NoError(t, err)

	s := res.Summary
	assert.Equal(t, 1, s.FileCount)
	assert.Equal(t, []string{"index.js"}, s.SampleFiles)
	// package.json lives only under node_modules, which is pruned.
	assert.False(t, s.HasPackageManifest)
	assert.NotContains(t, s.SampleDirectories, "node_modules")
	assert.NotContains(t, s.SampleDirectories, ".git")
}

func TestScan_MissingRoot(t *testing.T) {
	res, err := New(nil).Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 0, res.Summary.FileCount)
}

func TestScan_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "plain.txt")

	_, err := New(nil).Scan(context.Background(), filepath.Join(root, "plain.txt"))
	require.Error(t, err)
}

func TestScan_UnreadableEntrySkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeFile(t, root, "readable.go")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	writeFile(t, root, "locked/hidden.go")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	res, err := New(nil).Scan(context.Background(), root)
	require.NoError(t, err)

	// The readable file is summarized, the unreadable subtree is noted.
	assert.GreaterOrEqual(t, res.Summary.FileCount, 1)
	assert.Contains(t, res.Summary.SampleFiles, "readable.go")
	require.NotEmpty(t, res.Skipped)
	assert.Contains(t, res.Skipped[0].Path, "locked")
}

func TestScan_DetectsBranch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "refs", "heads"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, ".git", "HEAD"),
		[]byte("ref: refs/heads/main\n"), 0o644))

	res, err := New(nil).Scan(context.Background(), root)
	require.NoError(t, err)
	// go-git needs a valid repository layout; with only a HEAD file the
	// branch stays empty rather than erroring the scan.
	assert.NotNil(t, res.Summary)
	assert.Equal(t, 1, res.Summary.FileCount)
}

func TestReadLocalFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")
	content := "one\ntwo\nthree\nfour\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := ReadLocalFile(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", got)

	got, err = ReadLocalFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = ReadLocalFile(filepath.Join(root, "missing.txt"), 10)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestScan_CancelledContextEndsEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger, observed := logging.NewTestLogger()
	res, err := New(logger).Scan(ctx, root)
	require.NoError(t, err)
	require.NotEmpty(t, res.Skipped)
	assert.Equal(t, 1, observed.FilterMessage("directory scan ended early").Len())
}
