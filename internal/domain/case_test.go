package domain

import "testing"

func TestTestCaseDisplayName(t *testing.T) {
	method := TestMethod{ClassName: "UserTest", Name: "testCreate"}

	tests := []struct {
		name     string
		testCase TestCase
		want     string
	}{
		{
			name:     "deferred case uses the method name",
			testCase: TestCase{Method: method, Kind: CaseDeferred},
			want:     "UserTest::testCreate",
		},
		{
			name: "bound case appends the data set index",
			testCase: TestCase{
				Method:       method,
				Kind:         CaseBound,
				Row:          &DataRow{Values: []any{"a"}},
				DataSetIndex: 3,
			},
			want: `UserTest::testCreate with data set #3`,
		},
		{
			name: "bound case prefers the row label",
			testCase: TestCase{
				Method: method,
				Kind:   CaseBound,
				Row:    &DataRow{Values: []any{"a"}, Label: "admin user"},
			},
			want: `UserTest::testCreate with data set "admin user"`,
		},
		{
			name:     "skipped case uses the method name",
			testCase: TestCase{Method: method, Kind: CaseSkipped, SkipReason: "slow"},
			want:     "UserTest::testCreate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.testCase.DisplayName(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTestCaseRunnable(t *testing.T) {
	method := TestMethod{ClassName: "UserTest", Name: "testCreate"}

	if !(TestCase{Method: method, Kind: CaseBound}).Runnable() {
		t.Error("bound case should be runnable")
	}
	if !(TestCase{Method: method, Kind: CaseDeferred}).Runnable() {
		t.Error("deferred case should be runnable")
	}
	if (TestCase{Method: method, Kind: CaseSkipped}).Runnable() {
		t.Error("skipped case should not be runnable")
	}
	if (TestCase{Method: method, Kind: CaseError}).Runnable() {
		t.Error("error case should not be runnable")
	}
}
