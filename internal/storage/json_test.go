package storage

import (
	"testing"
	"time"

	"ptx/internal/config"
	"ptx/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return cfg
}

func result(kind domain.CaseKind, status domain.CaseStatus) domain.CaseResult {
	return domain.CaseResult{
		Case: domain.TestCase{
			Method: domain.TestMethod{ClassName: "UserTest", Name: "testCreate"},
			Kind:   kind,
		},
		Status: status,
	}
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	st := NewJSONStorage(testConfig(t))

	results := []domain.CaseResult{
		result(domain.CaseBound, domain.StatusPassed),
		result(domain.CaseBound, domain.StatusFailed),
		result(domain.CaseDeferred, domain.StatusPassed),
		result(domain.CaseSkipped, domain.StatusSkipped),
		result(domain.CaseError, domain.StatusErrored),
	}
	failures := []domain.TestFailure{
		{TestName: "UserTest::testCreate with data set #1", FilePath: "tests/UserTest.php"},
	}

	if err := st.Save(results, failures, 3*time.Second, 4); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	output, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	meta := output.Meta
	if meta.TotalCases != 5 {
		t.Errorf("expected 5 total cases, got %d", meta.TotalCases)
	}
	if meta.BoundCases != 2 || meta.DeferredCases != 1 || meta.SkippedCases != 1 || meta.DiscoveryErrors != 1 {
		t.Errorf("kind counts wrong: %+v", meta)
	}
	if meta.PassedCases != 2 || meta.FailedCases != 2 {
		t.Errorf("status counts wrong: %+v", meta)
	}
	if meta.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", meta.Workers)
	}
	if len(output.Details) != 1 {
		t.Errorf("expected 1 failure detail, got %d", len(output.Details))
	}
}

func TestJSONStorage_LoadMissingFile(t *testing.T) {
	st := NewJSONStorage(testConfig(t))
	if _, err := st.Load(); err == nil {
		t.Error("expected error loading before any run")
	}
}

func TestJSONStorage_SaveOutputRoundTrip(t *testing.T) {
	st := NewJSONStorage(testConfig(t))

	output := &domain.RunOutput{
		Meta:    domain.RunMeta{TotalCases: 1, FailedCases: 1},
		Details: []domain.TestFailure{{TestName: "x", Resolved: true}},
	}
	if err := st.SaveOutput(output); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !loaded.Details[0].Resolved {
		t.Error("resolved flag must survive the round trip")
	}
}
