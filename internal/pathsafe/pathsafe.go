// Package pathsafe builds filesystem paths from untrusted segments and guarantees they stay
// inside a trusted root directory.
package pathsafe

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrAccessDenied is returned when a candidate path resolves outside the root.
var ErrAccessDenied = errors.New("access denied")

// SanitizeSurvey replaces every "/" in a survey designator with "-".
// It is the only rewrite applied to segments; other characters pass through untouched
// and containment is left to SafePath.
func SanitizeSurvey(survey string) string {
	return strings.ReplaceAll(survey, "/", "-")
}

// SafePath joins root with segments, canonicalizes the result and verifies it is root itself
// or lies below it. Symlinks are resolved for the longest existing prefix of both paths.
// It never checks that the final path exists.
func SafePath(root string, segments ...string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("%w: empty root", ErrAccessDenied)
	}
	base, err := canonicalize(root)
	if err != nil {
		return "", fmt.Errorf("%w: root: %v", ErrAccessDenied, err)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, root)
	for _, s := range segments {
		// NUL cannot appear in a real path; the OS would reject it later with EINVAL.
		if strings.ContainsRune(s, 0) {
			return "", fmt.Errorf("%w: NUL byte in segment", ErrAccessDenied)
		}
		parts = append(parts, s)
	}
	candidate, err := canonicalize(filepath.Join(parts...))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	if !Within(base, candidate) {
		return "", ErrAccessDenied
	}
	return candidate, nil
}

// Within reports whether path equals root or is a descendant of it. Both arguments must be
// clean absolute paths. The check is segment-aware: "/data/pdf_evil" is not within "/data/pdf".
func Within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// canonicalize returns the absolute, clean form of p with symlinks resolved for every
// component that exists. Missing trailing components are appended verbatim.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	dir := abs
	var tail []string
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		tail = append([]string{filepath.Base(dir)}, tail...)
		dir = parent
	}
}
