package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	historyPath := filepath.Join(dir, "history.json")
	if err := os.WriteFile(historyPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "pattern expands to matches",
			args: []string{filepath.Join(dir, "*.txt")},
			want: []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")},
		},
		{
			name: "literal path passes through",
			args: []string{filepath.Join(dir, "c.md")},
			want: []string{filepath.Join(dir, "c.md")},
		},
		{
			name: "unmatched pattern kept as given",
			args: []string{filepath.Join(dir, "*.go")},
			want: []string{filepath.Join(dir, "*.go")},
		},
		{
			name: "malformed pattern kept as given",
			args: []string{"["},
			want: []string{"["},
		},
		{
			name: "history file dropped from matches",
			args: []string{filepath.Join(dir, "*.json")},
			want: nil,
		},
		{
			name: "history file dropped even when named literally",
			args: []string{historyPath},
			want: nil,
		},
		{
			name: "order follows arguments",
			args: []string{filepath.Join(dir, "c.md"), filepath.Join(dir, "a.txt")},
			want: []string{filepath.Join(dir, "c.md"), filepath.Join(dir, "a.txt")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandArgs(tt.args, historyPath)
			if !slices.Equal(got, tt.want) {
				t.Errorf("expandArgs(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
