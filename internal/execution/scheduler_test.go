package execution

import (
	"testing"

	"ptx/internal/domain"
)

func makeCases(count int) []domain.TestCase {
	cases := make([]domain.TestCase, count)
	for i := range cases {
		cases[i] = domain.TestCase{
			Method:       domain.TestMethod{ClassName: "OrderTest", Name: "testTotal"},
			Kind:         domain.CaseBound,
			DataSetIndex: i,
		}
	}
	return cases
}

func TestRoundRobinSchedule(t *testing.T) {
	scheduler := NewRoundRobinScheduler()
	batches := scheduler.Schedule(makeCases(7), 3)

	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}

	wantSizes := []int{3, 2, 2}
	for i, want := range wantSizes {
		if len(batches[i]) != want {
			t.Errorf("batch %d: expected %d cases, got %d", i, want, len(batches[i]))
		}
	}

	// Order within a batch follows expansion order
	wantIndexes := []int{0, 3, 6}
	for i, want := range wantIndexes {
		if batches[0][i].DataSetIndex != want {
			t.Errorf("batch 0 case %d: expected data set %d, got %d", i, want, batches[0][i].DataSetIndex)
		}
	}
}

func TestRoundRobinScheduleFewerCasesThanWorkers(t *testing.T) {
	scheduler := NewRoundRobinScheduler()
	batches := scheduler.Schedule(makeCases(2), 4)

	if len(batches) != 4 {
		t.Fatalf("expected 4 batches, got %d", len(batches))
	}
	if len(batches[2]) != 0 || len(batches[3]) != 0 {
		t.Error("expected trailing batches to be empty")
	}
}

func TestRoundRobinScheduleInvalidWorkerCount(t *testing.T) {
	scheduler := NewRoundRobinScheduler()
	batches := scheduler.Schedule(makeCases(3), 0)

	if len(batches) != 1 {
		t.Fatalf("expected a single batch, got %d", len(batches))
	}
	if len(batches[0]) != 3 {
		t.Errorf("expected all 3 cases in one batch, got %d", len(batches[0]))
	}
}
