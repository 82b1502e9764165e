package engine

import (
	"reflect"
	"testing"

	"github.com/lazypower/duedays/internal/store"
)

func TestApplyDecayFloorsAtZero(t *testing.T) {
	tasks := []store.Task{{Name: "a", Days: 5}, {Name: "b", Days: 0}}

	report := ApplyDecay(tasks, 3)

	want := []store.Task{{Name: "a", Days: 2}, {Name: "b", Days: 0}}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("tasks = %v, want %v", tasks, want)
	}
	if !report.Updated || report.Days != 3 {
		t.Errorf("report = %+v", report)
	}
	wantChanges := []TaskChange{{"a", 5, 2}, {"b", 0, 0}}
	if !reflect.DeepEqual(report.Changes, wantChanges) {
		t.Errorf("Changes = %v, want %v", report.Changes, wantChanges)
	}
}

func TestApplyDecayNonPositiveIsNoop(t *testing.T) {
	for _, elapsed := range []int{0, -1, -30} {
		tasks := []store.Task{{Name: "a", Days: 5}}
		report := ApplyDecay(tasks, elapsed)
		if report.Updated {
			t.Errorf("elapsed=%d: Updated = true", elapsed)
		}
		if tasks[0].Days != 5 {
			t.Errorf("elapsed=%d: days = %d, want 5", elapsed, tasks[0].Days)
		}
	}
}

func TestApplyDecayIdempotent(t *testing.T) {
	tasks := []store.Task{{Name: "a", Days: 5}, {Name: "b", Days: 1}}
	ApplyDecay(tasks, 2)
	snapshot := store.CloneTasks(tasks)

	report := ApplyDecay(tasks, 0)
	if report.Updated || !reflect.DeepEqual(tasks, snapshot) {
		t.Errorf("second decay changed tasks: %v -> %v", snapshot, tasks)
	}
}

func TestApplyDecayEmpty(t *testing.T) {
	report := ApplyDecay(nil, 4)
	if !report.Updated || len(report.Changes) != 0 {
		t.Errorf("report = %+v", report)
	}
}
