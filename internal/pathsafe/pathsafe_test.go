package pathsafe_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/survey-pdf-service/internal/pathsafe"
)

// realRoot returns a temp dir with symlinks already resolved so expectations compare cleanly.
func realRoot(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestSafePath_InsideRoot(t *testing.T) {
	root := realRoot(t)

	got, err := pathsafe.SafePath(root, "Alluri", "Addateegala", "Village", "12-3.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Alluri", "Addateegala", "Village", "12-3.pdf"), got)
}

func TestSafePath_RootItself(t *testing.T) {
	root := realRoot(t)

	got, err := pathsafe.SafePath(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestSafePath_Traversal(t *testing.T) {
	root := filepath.Join(realRoot(t), "data", "pdf")
	require.NoError(t, os.MkdirAll(root, 0o755))

	cases := []struct {
		name     string
		segments []string
	}{
		{"village_dotdot", []string{"District", "Mandal", "../../../../etc", "x.pdf"}},
		{"deep_escape", []string{"..", "..", "..", "..", "..", "etc", "passwd"}},
		{"filename_escape", []string{"a", "b", "c", "../../../../x.pdf"}},
		{"sibling_prefix", []string{"..", "pdf_evil", "x.pdf"}},
		{"single_parent", []string{".."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pathsafe.SafePath(root, tc.segments...)
			assert.ErrorIs(t, err, pathsafe.ErrAccessDenied)
			assert.Empty(t, got)
		})
	}
}

func TestSafePath_CraftedVillageNeverLandsUnderEtc(t *testing.T) {
	root := realRoot(t)

	// district/mandal/../../etc folds back to root/etc: inside the root, never /etc itself.
	got, err := pathsafe.SafePath(root, "District", "Mandal", "../../etc", "passwd.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc", "passwd.pdf"), got)
	assert.False(t, strings.HasPrefix(got, "/etc/"))
}

func TestSafePath_DotDotThatStaysInside(t *testing.T) {
	root := realRoot(t)

	got, err := pathsafe.SafePath(root, "District", "..", "Other", "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Other", "x.pdf"), got)
}

func TestSafePath_AbsoluteLookingSegmentStaysUnderRoot(t *testing.T) {
	root := realRoot(t)

	got, err := pathsafe.SafePath(root, "/etc", "passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, root+string(filepath.Separator)), got)
}

func TestSafePath_SymlinkEscape(t *testing.T) {
	base := realRoot(t)
	root := filepath.Join(base, "root")
	outside := filepath.Join(base, "outside")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.MkdirAll(outside, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.pdf"), []byte("%PDF"), 0o644))
	if err := os.Symlink(outside, filepath.Join(root, "District")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, err := pathsafe.SafePath(root, "District", "secret.pdf")
	assert.ErrorIs(t, err, pathsafe.ErrAccessDenied)
}

func TestSafePath_SymlinkedRoot(t *testing.T) {
	base := realRoot(t)
	target := filepath.Join(base, "target")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "District"), 0o755))
	link := filepath.Join(base, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := pathsafe.SafePath(link, "District", "1.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, "District", "1.pdf"), got)
}

func TestSafePath_EmptyRoot(t *testing.T) {
	_, err := pathsafe.SafePath("", "a")
	assert.ErrorIs(t, err, pathsafe.ErrAccessDenied)
}

func TestSafePath_NulByteRejected(t *testing.T) {
	root := realRoot(t)

	_, err := pathsafe.SafePath(root, "District", "bad\x00name.pdf")
	assert.ErrorIs(t, err, pathsafe.ErrAccessDenied)
}

func TestWithin(t *testing.T) {
	cases := []struct {
		root, path string
		want       bool
	}{
		{"/data/pdf", "/data/pdf", true},
		{"/data/pdf", "/data/pdf/x", true},
		{"/data/pdf", "/data/pdf_evil/x", false},
		{"/data/pdf", "/data/pdfx", false},
		{"/data/pdf", "/data", false},
		{"/", "/etc/passwd", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pathsafe.Within(tc.root, tc.path), "%s in %s", tc.path, tc.root)
	}
}

func TestSanitizeSurvey(t *testing.T) {
	cases := map[string]string{
		"12/3":   "12-3",
		"1/2/3A": "1-2-3A",
		"45":     "45",
		"45A":    "45A",
		"a\\b":   "a\\b",
		"":       "",
	}
	for in, want := range cases {
		got := pathsafe.SanitizeSurvey(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, pathsafe.SanitizeSurvey(got), "sanitization must be idempotent for %q", in)
	}
}
