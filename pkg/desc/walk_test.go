package desc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}
}

func TestWalk_SkipsHiddenAndBinary(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"visible.txt":       []byte("type: nfa\n"),
		".hidden.txt":       []byte("type: nfa\n"),
		".hiddendir/in.txt": []byte("type: nfa\n"),
		"sub/nested.txt":    []byte("type: nfa\n"),
		"blob.bin":          {0x00, 0x01, 0x02},
	})

	files, err := Walk(context.Background(), root, WalkConfig{})
	require.NoError(t, err)

	// filepath.Walk visits entries in lexical order, so the result order is
	// deterministic.
	assert.Equal(t, []string{
		filepath.Join(root, "sub", "nested.txt"),
		filepath.Join(root, "visible.txt"),
	}, files)
}

func TestWalk_IncludeHidden(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"visible.txt":       []byte("type: nfa\n"),
		".hidden.txt":       []byte("type: nfa\n"),
		".hiddendir/in.txt": []byte("type: nfa\n"),
	})

	files, err := Walk(context.Background(), root, WalkConfig{IncludeHidden: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, ".hidden.txt"),
		filepath.Join(root, ".hiddendir", "in.txt"),
		filepath.Join(root, "visible.txt"),
	}, files)
}

func TestWalk_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"small.txt": []byte("ok"),
		"large.txt": bytes.Repeat([]byte("type: nfa\n"), 16),
	})

	files, err := Walk(context.Background(), root, WalkConfig{MaxFileSize: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "small.txt")}, files)
}

func TestWalk_GitignoreHonored(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		".gitignore": []byte("*.skip\nignored/\n"),
		"keep.txt":   []byte("type: nfa\n"),
		"drop.skip":  []byte("type: nfa\n"),
		"ignored/a":  []byte("type: nfa\n"),
	})

	files, err := Walk(context.Background(), root, WalkConfig{})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "keep.txt")}, files)
}

func TestWalk_Symlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"real.txt": []byte("type: nfa\n"),
	})
	link := filepath.Join(root, "link.txt")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.txt"), link))

	files, err := Walk(context.Background(), root, WalkConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "real.txt")}, files)

	files, err = Walk(context.Background(), root, WalkConfig{FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{link, filepath.Join(root, "real.txt")}, files)
}

func TestWalk_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"a.txt": []byte("x")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Walk(ctx, root, WalkConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".git"))
	assert.True(t, isHidden(".hidden"))
	assert.False(t, isHidden("visible"))
	assert.False(t, isHidden("."))
	assert.False(t, isHidden(".."))
}
