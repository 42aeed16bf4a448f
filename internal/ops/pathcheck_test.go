package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hpungsan/gachalog/internal/errors"
)

func TestValidatePath_TraversalRejected(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../backup.json"},
		{"deep traversal", "../../etc/backup.json"},
		{"mid-path traversal", "/tmp/../etc/backup.json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePath(tc.path, PathCheckWrite)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidatePath_ExtensionRequired(t *testing.T) {
	dir := t.TempDir()
	tests := []string{"backup", "backup.jsonl", "backup.txt"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidatePath(filepath.Join(dir, name), PathCheckWrite)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidatePath_Valid(t *testing.T) {
	dir := t.TempDir()

	if err := ValidatePath(filepath.Join(dir, "new.json"), PathCheckWrite); err != nil {
		t.Errorf("new file: %v", err)
	}
	if err := ValidatePath(filepath.Join(dir, "Upper.JSON"), PathCheckWrite); err != nil {
		t.Errorf("upper-case extension: %v", err)
	}

	existing := filepath.Join(dir, "existing.json")
	if err := os.WriteFile(existing, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := ValidatePath(existing, PathCheckRead); err != nil {
		t.Errorf("existing file: %v", err)
	}
}

func TestValidatePath_EmptyPath(t *testing.T) {
	if err := ValidatePath("  ", PathCheckWrite); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got: %v", err)
	}
}

func TestValidatePath_FileNotFound_ReadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	if err := ValidatePath(path, PathCheckRead); !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got: %v", err)
	}
	if err := ValidatePath(path, PathCheckWrite); err != nil {
		t.Errorf("write mode should accept a missing file, got: %v", err)
	}
}

func TestValidatePath_DirectoryRejected(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export.json")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	if err := ValidatePath(dir, PathCheckWrite); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got: %v", err)
	}
}

func TestValidatePath_SymlinkRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	for _, mode := range []PathCheckMode{PathCheckRead, PathCheckWrite} {
		if err := ValidatePath(link, mode); !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("mode %d: expected ErrInvalidRequest, got: %v", mode, err)
		}
	}
}

func TestValidatePath_SymlinkParentRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	base := t.TempDir()
	real := filepath.Join(base, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	linked := filepath.Join(base, "linked")
	if err := os.Symlink(real, linked); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	err := ValidatePath(filepath.Join(linked, "out.json"), PathCheckWrite)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got: %v", err)
	}
}

func TestOpenFileNoFollowRead_Missing(t *testing.T) {
	_, err := openFileNoFollowRead(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got: %v", err)
	}
}

func TestContainsTraversal(t *testing.T) {
	tests := []struct {
		path     string
		contains bool
	}{
		{"/home/user/file.json", false},
		{"../file.json", true},
		{"/home/../etc/passwd", true},
		{"./file.json", false},
		{"/home/user/.hidden/file.json", false},
		{"file..name.json", false}, // .. not as path component
		{"/tmp/a/b/../c.json", true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			result := containsTraversal(tc.path)
			if result != tc.contains {
				t.Errorf("containsTraversal(%q) = %v, want %v", tc.path, result, tc.contains)
			}
		})
	}
}

func TestSanitizeForFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "hk4e", "hk4e"},
		{"joined titles", "hkrpg-nap", "hkrpg-nap"},
		{"forward slash", "path/to/file", "path-to-file"},
		{"backslash", "path\\to\\file", "path-to-file"},
		{"double dots", "foo..bar", "foo-bar"},
		{"traversal attempt", "../../../etc/passwd", "etc-passwd"},
		{"null bytes", "foo\x00bar", "foobar"},
		{"empty after sanitize", "../../..", "export"},
		{"unicode preserved", "原神", "原神"},
		{"multiple dashes collapse", "a---b", "a-b"},
		{"trailing dashes trimmed", "foo---", "foo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := SanitizeForFilename(tc.input)
			if result != tc.expected {
				t.Errorf("SanitizeForFilename(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}
