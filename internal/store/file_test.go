package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFileTaskStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := NewFileTaskStore(path, nil)

	want := []Task{{"x", 1}, {"y", 2}, {"x", 3}}
	if err := s.SaveTasks(want); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	got, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadTasks = %v, want %v", got, want)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "x 1\ny 2\nx 3\n" {
		t.Errorf("file contents = %q", data)
	}
}

func TestFileTaskStoreMissingFile(t *testing.T) {
	s := NewFileTaskStore(filepath.Join(t.TempDir(), "absent.txt"), nil)

	got, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadTasks = %v, want empty", got)
	}
}

func TestFileTaskStoreEmptySave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := NewFileTaskStore(path, nil)

	if err := s.SaveTasks([]Task{{"a", 1}}); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	if err := s.SaveTasks(nil); err != nil {
		t.Fatalf("SaveTasks(nil): %v", err)
	}
	got, _ := s.LoadTasks()
	if len(got) != 0 {
		t.Errorf("LoadTasks = %v, want empty", got)
	}
}

func TestFileTaskStoreMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "good 3\n" +
		"\n" +
		"nodays\n" +
		"bad abc\n" +
		"too many 4\n" +
		"late -2\n" +
		"   spaced    7   \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	s := NewFileTaskStore(path, zap.New(core).Sugar())

	got, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	want := []Task{{"good", 3}, {"late", 0}, {"spaced", 7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadTasks = %v, want %v", got, want)
	}

	skipped := logs.FilterMessage("skipping malformed task line").Len()
	if skipped != 3 {
		t.Errorf("malformed warnings = %d, want 3", skipped)
	}
	if logs.FilterMessage("clamping negative day count").Len() != 1 {
		t.Error("expected one clamp warning")
	}
}

func TestFileTaskStoreRewriteDropsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if err := os.WriteFile(path, []byte("good 3\nbad abc\nlate -2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewFileTaskStore(path, nil)

	tasks, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if err := s.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "good 3\nlate 0\n" {
		t.Errorf("file after rewrite = %q, want malformed line dropped and clamp persisted", data)
	}
}

func TestFileDateStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "date.txt")
	s := NewFileDateStore(path)

	d, err := s.LoadLastDate()
	if err != nil {
		t.Fatalf("LoadLastDate: %v", err)
	}
	if d != "" {
		t.Errorf("missing file LoadLastDate = %q, want empty", d)
	}

	if err := s.SaveDate("2025-01-31"); err != nil {
		t.Fatalf("SaveDate: %v", err)
	}
	d, _ = s.LoadLastDate()
	if d != "2025-01-31" {
		t.Errorf("LoadLastDate = %q, want 2025-01-31", d)
	}
}

func TestReadFirstLineEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	line, err := ReadFirstLine(path)
	if err != nil {
		t.Fatalf("ReadFirstLine: %v", err)
	}
	if line != "" {
		t.Errorf("ReadFirstLine = %q, want empty", line)
	}
}

func TestWriteFileAtomicLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := WriteLine(path, "/tmp/tasks.txt"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (temp file left behind?)", len(entries))
	}
	line, _ := ReadFirstLine(path)
	if line != "/tmp/tasks.txt" {
		t.Errorf("ReadFirstLine = %q", line)
	}
}
