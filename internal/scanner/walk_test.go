package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"convertts/internal/config"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWalkSkipsInProcess(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "movie.ts"), 16)
	writeFile(t, filepath.Join(root, "inproc-stale.ts"), 16)

	q, report := NewWalker(config.Default(), nil).Walk([]string{root})

	items := q.Items()
	if len(items) != 1 || items[0] != filepath.Join(root, "movie.ts") {
		t.Fatalf("queue = %v", items)
	}
	if len(report.InProcess) != 1 || filepath.Base(report.InProcess[0]) != "inproc-stale.ts" {
		t.Fatalf("in process = %v", report.InProcess)
	}
	if report.Examined != 2 {
		t.Fatalf("examined = %d", report.Examined)
	}
}

func TestWalkFilesBeforeSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "deep.ts"), 1)
	writeFile(t, filepath.Join(root, "a", "b", "deeper.ts"), 1)
	writeFile(t, filepath.Join(root, "z.ts"), 1)
	writeFile(t, filepath.Join(root, "notes.txt"), 1)

	q, _ := NewWalker(config.Default(), nil).Walk([]string{root})

	want := []string{
		filepath.Join(root, "z.ts"),
		filepath.Join(root, "a", "deep.ts"),
		filepath.Join(root, "a", "b", "deeper.ts"),
	}
	got := q.Items()
	if len(got) != len(want) {
		t.Fatalf("queue = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("queue[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWalkVisitsEachFileOnceAcrossRoots(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "one.ts"), 1)
	writeFile(t, filepath.Join(first, "sub", "two.ts"), 1)
	writeFile(t, filepath.Join(second, "three.ts"), 1)

	missing := filepath.Join(first, "does-not-exist")
	core, logs := observer.New(zapcore.WarnLevel)
	q, report := NewWalker(config.Default(), zap.New(core)).Walk([]string{first, missing, second})

	seen := map[string]int{}
	for _, p := range q.Items() {
		seen[p]++
	}
	if len(seen) != 3 {
		t.Fatalf("queue = %v", q.Items())
	}
	for p, n := range seen {
		if n != 1 {
			t.Fatalf("%s queued %d times", p, n)
		}
	}
	if items := q.Items(); items[len(items)-1] != filepath.Join(second, "three.ts") {
		t.Fatalf("second root not queued last: %v", items)
	}

	if len(report.InvalidRoots) != 1 || report.InvalidRoots[0] != missing {
		t.Fatalf("invalid roots = %v", report.InvalidRoots)
	}
	if logs.FilterMessage(missing + " is not a valid directory").Len() != 1 {
		t.Fatalf("missing root not reported: %v", logs.All())
	}
}

func TestWalkRejectsFileRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "movie.ts")
	writeFile(t, file, 1)

	q, report := NewWalker(config.Default(), nil).Walk([]string{file})
	if q.Len() != 0 {
		t.Fatalf("file root queued: %v", q.Items())
	}
	if len(report.InvalidRoots) != 1 {
		t.Fatalf("invalid roots = %v", report.InvalidRoots)
	}
}

func TestWalkDoesNotFollowDirectorySymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "movie.ts"), 1)
	if err := os.Symlink(root, filepath.Join(root, "sub", "loop")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "sub", "movie.ts"), filepath.Join(root, "link.ts")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	q, _ := NewWalker(config.Default(), nil).Walk([]string{root})
	if q.Len() != 2 {
		t.Fatalf("queue = %v", q.Items())
	}
}
