package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/lazypower/duedays/internal/store"
)

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(y, m, d, 15, 30, 0, 0, time.Local)
	}
}

func testEngine(t *testing.T, tasks []store.Task, lastDate string) (*Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(tasks, lastDate)
	e := New(mem, mem, nil)
	e.Now = fixedNow(2024, time.June, 10)
	return e, mem
}

func TestStartupAppliesDecay(t *testing.T) {
	e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}, {Name: "b", Days: 0}}, "2024-06-07")

	tr, report, err := e.Startup()
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if !report.Decay.Updated || report.Decay.Days != 3 {
		t.Errorf("decay = %+v, want 3 days updated", report.Decay)
	}
	want := []store.Task{{Name: "a", Days: 2}, {Name: "b", Days: 0}}
	if got := tr.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("tracker tasks = %v, want %v", got, want)
	}
	saved, _ := mem.LoadTasks()
	if !reflect.DeepEqual(saved, want) {
		t.Errorf("saved tasks = %v, want %v", saved, want)
	}
	if mem.Saves != 1 {
		t.Errorf("Saves = %d, want 1", mem.Saves)
	}
	if d, _ := mem.LoadLastDate(); d != "2024-06-10" {
		t.Errorf("last date = %q, want 2024-06-10", d)
	}
}

func TestStartupSameDayIsNoop(t *testing.T) {
	e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}}, "2024-06-10")

	tr, report, err := e.Startup()
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if report.Decay.Updated {
		t.Error("expected no decay on same day")
	}
	if mem.Saves != 0 {
		t.Errorf("Saves = %d, want 0 (no rewrite without decay)", mem.Saves)
	}
	if mem.DateSave != 1 {
		t.Errorf("DateSave = %d, want 1 (date stamped every run)", mem.DateSave)
	}
	if got := tr.List(); got[0].Days != 5 {
		t.Errorf("days = %d, want 5", got[0].Days)
	}
}

func TestStartupClockMovedBack(t *testing.T) {
	e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}}, "2024-06-15")

	_, report, err := e.Startup()
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if report.Decay.Updated {
		t.Error("backward clock must not decay")
	}
	if report.Decay.Days != -5 {
		t.Errorf("Days = %d, want -5", report.Decay.Days)
	}
	if d, _ := mem.LoadLastDate(); d != "2024-06-10" {
		t.Errorf("last date = %q, want re-stamped 2024-06-10", d)
	}
}

func TestStartupFirstRun(t *testing.T) {
	for _, last := range []string{"", "not-a-date"} {
		e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}}, last)

		_, report, err := e.Startup()
		if err != nil {
			t.Fatalf("Startup(%q): %v", last, err)
		}
		if report.Decay.Updated {
			t.Errorf("last=%q: first run must not decay", last)
		}
		if !report.LastSeen.Equal(report.Today) {
			t.Errorf("last=%q: LastSeen = %v, want today", last, report.LastSeen)
		}
		if d, _ := mem.LoadLastDate(); d != "2024-06-10" {
			t.Errorf("last=%q: date = %q, want 2024-06-10", last, d)
		}
	}
}

func TestStartupTwiceIsIdempotent(t *testing.T) {
	e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}}, "2024-06-08")

	if _, _, err := e.Startup(); err != nil {
		t.Fatalf("first Startup: %v", err)
	}
	tr, report, err := e.Startup()
	if err != nil {
		t.Fatalf("second Startup: %v", err)
	}
	if report.Decay.Updated {
		t.Error("second run on the same day decayed again")
	}
	if got := tr.List(); got[0].Days != 3 {
		t.Errorf("days = %d, want 3", got[0].Days)
	}
	if mem.Saves != 1 {
		t.Errorf("Saves = %d, want 1", mem.Saves)
	}
}

func TestStartupPersistErrorIsReported(t *testing.T) {
	e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}}, "2024-06-08")
	mem.SaveErr = errors.New("disk full")

	tr, report, err := e.Startup()
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if report.PersistErr == nil {
		t.Fatal("expected PersistErr")
	}
	if tr == nil || tr.List()[0].Days != 3 {
		t.Error("tracker should still hold decayed tasks")
	}
	if mem.DateSave != 0 {
		t.Errorf("DateSave = %d, want 0 (date must not advance past unsaved decay)", mem.DateSave)
	}
	if d, _ := mem.LoadLastDate(); d != "2024-06-08" {
		t.Errorf("last date = %q, want 2024-06-08 kept", d)
	}
}

func TestStartupRetriesDecayAfterFailedSave(t *testing.T) {
	e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}}, "2024-06-07")
	mem.SaveErr = errors.New("disk full")

	if _, report, err := e.Startup(); err != nil || report.PersistErr == nil {
		t.Fatalf("first Startup: err=%v persist=%v, want persist error", err, report.PersistErr)
	}

	mem.SaveErr = nil
	tr, report, err := e.Startup()
	if err != nil {
		t.Fatalf("second Startup: %v", err)
	}
	if !report.Decay.Updated || report.Decay.Days != 3 {
		t.Errorf("second decay = %+v, want 3 days", report.Decay)
	}
	want := []store.Task{{Name: "a", Days: 2}}
	saved, _ := mem.LoadTasks()
	if !reflect.DeepEqual(saved, want) || !reflect.DeepEqual(tr.List(), want) {
		t.Errorf("saved = %v, tracker = %v, want %v", saved, tr.List(), want)
	}
	if d, _ := mem.LoadLastDate(); d != "2024-06-10" {
		t.Errorf("last date = %q, want 2024-06-10", d)
	}
}

func TestStartupClockMovedBackStampsDateWithoutSaving(t *testing.T) {
	e, mem := testEngine(t, []store.Task{{Name: "a", Days: 5}}, "2024-06-12")
	mem.SaveErr = errors.New("disk full")

	_, report, err := e.Startup()
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if report.PersistErr != nil {
		t.Errorf("PersistErr = %v, want nil (no task write needed)", report.PersistErr)
	}
	if mem.DateSave != 1 {
		t.Errorf("DateSave = %d, want 1", mem.DateSave)
	}
}

type failingTasks struct{ store.Memory }

func (*failingTasks) LoadTasks() ([]store.Task, error) { return nil, errors.New("permission denied") }

func TestStartupLoadError(t *testing.T) {
	f := &failingTasks{}
	e := New(f, f, nil)

	if _, _, err := e.Startup(); err == nil {
		t.Fatal("expected load error")
	}
}
