package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

func TestLocalSourceFSAdapter_ListFiles(t *testing.T) {
	t.Run("lists nested files in lexical order", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "b.jsx"), "b")
		writeTestFile(t, filepath.Join(root, "a.jsx"), "a")

		nestedDir := filepath.Join(root, "src")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "App.jsx")
		writeTestFile(t, child, "app")

		got, err := adapter.ListFiles(context.Background(), m.Path(root))
		if err != nil {
			t.Fatalf("ListFiles() error = %v", err)
		}

		want := []string{
			filepath.Join(root, "a.jsx"),
			filepath.Join(root, "b.jsx"),
			child,
		}

		if len(got) != len(want) {
			t.Fatalf("ListFiles() = %v, want %v", got, want)
		}

		for i := range want {
			if string(got[i]) != want[i] {
				t.Fatalf("ListFiles()[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("skips ignored directories", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		modules := filepath.Join(root, "node_modules")
		mustMkdir(t, modules)
		writeTestFile(t, filepath.Join(modules, "App.jsx"), "vendored")
		writeTestFile(t, filepath.Join(root, "App.jsx"), "app")

		got, err := adapter.ListFiles(context.Background(), m.Path(root), "node_modules", ".git")
		if err != nil {
			t.Fatalf("ListFiles() error = %v", err)
		}

		paths := toStrings(got)
		if containsPath(paths, filepath.Join(modules, "App.jsx")) {
			t.Fatalf("ListFiles() visited skipped directory: %v", paths)
		}

		if !containsPath(paths, filepath.Join(root, "App.jsx")) {
			t.Fatalf("ListFiles() did not visit top-level file")
		}
	})

	t.Run("missing root yields no files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		got, err := adapter.ListFiles(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")))
		if err != nil {
			t.Fatalf("ListFiles() error = %v", err)
		}

		if len(got) != 0 {
			t.Fatalf("ListFiles() = %v, want empty", got)
		}
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.jsx"), "a")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := adapter.ListFiles(ctx, m.Path(root)); err == nil {
			t.Fatalf("ListFiles() expected context error")
		}
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "App.jsx")
	content := "function App() {}\n" + "export default App\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "App.jsx")
	content := []byte("function App() {}\n")
	writeTestBytes(t, path, content)

	expected := fmt.Sprintf("%x", sha256.Sum256(content))

	hash, err := adapter.HashFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	if hash != expected {
		t.Fatalf("HashFile() = %s, want %s", hash, expected)
	}

	if _, err := adapter.HashFile(context.Background(), m.Path(filepath.Join(root, "missing"))); err == nil {
		t.Fatalf("HashFile() expected error for missing file")
	}
}

func TestLocalSourceFSAdapter_IsFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "App.jsx")
	writeTestFile(t, path, "app")

	if !adapter.IsFile(context.Background(), m.Path(path)) {
		t.Fatalf("IsFile() = false for regular file")
	}

	if adapter.IsFile(context.Background(), m.Path(root)) {
		t.Fatalf("IsFile() = true for directory")
	}

	if adapter.IsFile(context.Background(), m.Path(filepath.Join(root, "missing"))) {
		t.Fatalf("IsFile() = true for missing path")
	}
}

func TestLocalSourceFSAdapter_WriteAndAppendFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	root := t.TempDir()
	path := filepath.Join(root, "artifacts", "feedback", "README.md")

	if err := adapter.WriteFile(ctx, m.Path(path), []byte("# Feedback\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := adapter.AppendFile(ctx, m.Path(path), []byte("more\n")); err != nil {
		t.Fatalf("AppendFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if string(got) != "# Feedback\nmore\n" {
		t.Fatalf("file content = %q", string(got))
	}

	summary := filepath.Join(root, "summary.md")
	if err := adapter.AppendFile(ctx, m.Path(summary), []byte("a")); err != nil {
		t.Fatalf("AppendFile() on new file error = %v", err)
	}
}

func TestLocalSourceFSAdapter_JoinPath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	joined := adapter.JoinPath(context.Background(), "/tmp", "project", "src", "App.jsx")
	if string(joined) != filepath.Join("/tmp", "project", "src", "App.jsx") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/tmp", "project", "src", "App.jsx"))
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func toStrings(paths []m.Path) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, string(p))
	}

	return out
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
