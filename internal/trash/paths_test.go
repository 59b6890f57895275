package trash

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIsUnsafePath(t *testing.T) {
	tests := []struct {
		path   string
		unsafe bool
	}{
		{".", true},
		{"..", true},
		{"./", true},
		{"foo/..", true},
		{"/", true},
		{"//", true},
		{"//etc", true},
		{"foo", false},
		{"./foo", false},
		{"/tmp/foo", false},
	}

	for _, tt := range tests {
		got, err := isUnsafePath(tt.path)
		if err != nil {
			t.Errorf("isUnsafePath(%q) returned error: %v", tt.path, err)
			continue
		}
		if got != tt.unsafe {
			t.Errorf("isUnsafePath(%q) = %v, want %v", tt.path, got, tt.unsafe)
		}
	}
}

func TestResolveRoots(t *testing.T) {
	home := t.TempDir()
	temp := t.TempDir()

	roots, err := ResolveRoots(Config{HomeRoot: home, TempRoot: temp})
	if err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join(temp, "suteru"); roots.Hold != want {
		t.Errorf("holding area = %q, want %q", roots.Hold, want)
	}
	if want := filepath.Join(home, ".config", "suteru", "history.json"); roots.HistoryPath != want {
		t.Errorf("history path = %q, want %q", roots.HistoryPath, want)
	}

	for _, dir := range []string{roots.Hold, filepath.Dir(roots.HistoryPath)} {
		fi, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", dir, err)
		}
		if !fi.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestResolveRootsSetupError(t *testing.T) {
	// A regular file where the holding area should go makes creation fail.
	temp := t.TempDir()
	if err := os.WriteFile(filepath.Join(temp, "suteru"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ResolveRoots(Config{HomeRoot: t.TempDir(), TempRoot: temp})
	var setupErr *SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected SetupError, got %v", err)
	}
	if setupErr.Op != "create_dir" {
		t.Errorf("unexpected op %q", setupErr.Op)
	}
}
