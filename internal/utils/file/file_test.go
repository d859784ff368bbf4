package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkgin-go/pkgin/internal/utils/file"
)

func TestIsSubPath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"same dir", base, true},
		{"nested", filepath.Join(base, "pkgCache", "repo"), true},
		{"parent", filepath.Dir(base), false},
		{"sibling", filepath.Join(filepath.Dir(base), "other"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := file.IsSubPath(base, tc.target)
			if err != nil {
				t.Fatalf("IsSubPath returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("IsSubPath(%q, %q) = %v, want %v", base, tc.target, got, tc.want)
			}
		})
	}
}

func TestAppend(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "keep.list")

	if err := file.Append("pkgA\n", dst); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	if err := file.Append("pkgB\n", dst); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "pkgA\npkgB\n" {
		t.Errorf("unexpected file contents: %q", string(data))
	}
}
