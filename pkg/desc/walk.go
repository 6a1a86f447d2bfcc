package desc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// WalkConfig controls description discovery under a directory root.
type WalkConfig struct {
	IncludeHidden  bool  // include dotfiles and dot-directories
	FollowSymlinks bool  // follow symlinked files
	MaxFileSize    int64 // skip files larger than this many bytes, 0 for no limit
}

// Walk returns the description candidates under root in lexical order.
// Hidden entries and binary files are skipped, as is anything matched by a
// .gitignore at root.
func Walk(ctx context.Context, root string, cfg WalkConfig) ([]string, error) {
	var ignore *gitignore.GitIgnore
	if ignorePath := filepath.Join(root, ".gitignore"); fileExists(ignorePath) {
		ignore, _ = gitignore.CompileIgnoreFile(ignorePath)
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if path != root && !cfg.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if !cfg.FollowSymlinks {
				return nil
			}
			resolved, statErr := os.Stat(path)
			if statErr != nil || resolved.IsDir() {
				return nil
			}
		}
		if !cfg.IncludeHidden && isHidden(info.Name()) {
			return nil
		}
		if cfg.MaxFileSize > 0 && info.Size() > cfg.MaxFileSize {
			return nil
		}
		if ignore != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && ignore.MatchesPath(rel) {
				return nil
			}
		}
		if isBinaryFile(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isHidden reports whether name is a dotfile. The current and parent
// directory entries do not count.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isBinaryFile sniffs the first 8KB of the file for NUL bytes.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 8192)
	n, _ := f.Read(buf)
	return bytes.IndexByte(buf[:n], 0) != -1
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
