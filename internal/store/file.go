package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FileTaskStore keeps tasks in a plain text file, one "<name> <days>" per line.
//
// Malformed lines are skipped with a warning instead of failing the load, so a
// single bad edit never hides the rest of the list. Negative day counts are
// clamped to 0. Skipped lines are not kept: the next SaveTasks (after decay,
// add or done) rewrites the file from the loaded list and drops them.
type FileTaskStore struct {
	Path string
	log  *zap.SugaredLogger
}

// NewFileTaskStore returns a store backed by the file at path. A nil logger
// discards warnings.
func NewFileTaskStore(path string, log *zap.SugaredLogger) *FileTaskStore {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FileTaskStore{Path: path, log: log}
}

// LoadTasks reads the task file. A missing file yields an empty list.
func (s *FileTaskStore) LoadTasks() ([]Task, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Infow("task file not found, starting a new list", "path", s.Path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	var tasks []Task
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		task, err := parseTaskLine(line)
		if err != nil {
			s.log.Warnw("skipping malformed task line", "path", s.Path, "line", lineNo, "error", err)
			continue
		}
		if task.Days < 0 {
			s.log.Warnw("clamping negative day count", "path", s.Path, "line", lineNo, "task", task.Name, "days", task.Days)
			task.Days = 0
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return tasks, nil
}

func parseTaskLine(line string) (Task, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Task{}, fmt.Errorf("want 2 fields, got %d", len(fields))
	}
	days, err := strconv.Atoi(fields[1])
	if err != nil {
		return Task{}, fmt.Errorf("days %q is not an integer", fields[1])
	}
	return Task{Name: fields[0], Days: days}, nil
}

// SaveTasks rewrites the task file with every task, in order.
func (s *FileTaskStore) SaveTasks(tasks []Task) error {
	return writeFileAtomic(s.Path, func(w *bufio.Writer) error {
		for _, t := range tasks {
			if _, err := fmt.Fprintf(w, "%s %d\n", t.Name, t.Days); err != nil {
				return err
			}
		}
		return nil
	})
}

// FileDateStore keeps the last-seen date as a single line in a text file.
type FileDateStore struct {
	Path string
}

// NewFileDateStore returns a date store backed by the file at path.
func NewFileDateStore(path string) *FileDateStore {
	return &FileDateStore{Path: path}
}

// LoadLastDate returns the first line of the file, or "" if the file is
// missing or empty.
func (s *FileDateStore) LoadLastDate() (string, error) {
	line, err := ReadFirstLine(s.Path)
	if err != nil {
		return "", fmt.Errorf("read date file: %w", err)
	}
	return line, nil
}

// SaveDate overwrites the file with date.
func (s *FileDateStore) SaveDate(date string) error {
	return writeFileAtomic(s.Path, func(w *bufio.Writer) error {
		_, err := w.WriteString(date + "\n")
		return err
	})
}

// ReadFirstLine returns the trimmed first line of the file at path. A missing
// file is not an error and yields "".
func ReadFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", scanner.Err()
}

// WriteLine replaces the file at path with a single line.
func WriteLine(path, line string) error {
	return writeFileAtomic(path, func(w *bufio.Writer) error {
		_, err := w.WriteString(line + "\n")
		return err
	})
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it over path, so readers never observe a half-written file.
func writeFileAtomic(path string, write func(w *bufio.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
