package domain

// TestFailure represents a failed test case as parsed from PHPUnit output
type TestFailure struct {
	TestName     string   `json:"test_name"` // Case display name, including the data set when present
	FilePath     string   `json:"file_path"`
	ErrorDetails string   `json:"error_details"`
	StackTrace   []string `json:"stack_trace"`
	File         string   `json:"file"`
	Line         int      `json:"line"`
	Message      string   `json:"message"`
	Resolved     bool     `json:"resolved,omitempty"` // Track if the failure is marked as resolved in the viewer
}
