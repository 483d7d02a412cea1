package expand

import "ptx/internal/domain"

// Factory is the standard CaseFactory producing plain domain.TestCase values
type Factory struct{}

// NewFactory creates a Factory
func NewFactory() *Factory {
	return &Factory{}
}

// Skipped builds a skipped case carrying the declared reason
func (f *Factory) Skipped(method domain.TestMethod, reason string) domain.TestCase {
	return domain.TestCase{
		Method:     method,
		Kind:       domain.CaseSkipped,
		SkipReason: reason,
	}
}

// Bound builds a case bound to exactly one data row
func (f *Factory) Bound(method domain.TestMethod, row domain.DataRow, dataSetIndex int) domain.TestCase {
	r := row
	return domain.TestCase{
		Method:       method,
		Kind:         domain.CaseBound,
		Row:          &r,
		DataSetIndex: dataSetIndex,
	}
}

// Deferred builds a case that resolves its data at execution time
func (f *Factory) Deferred(method domain.TestMethod) domain.TestCase {
	return domain.TestCase{
		Method: method,
		Kind:   domain.CaseDeferred,
	}
}

// ExecutionError builds a case reporting that discovery found no usable data
func (f *Factory) ExecutionError(method domain.TestMethod, message string) domain.TestCase {
	return domain.TestCase{
		Method:       method,
		Kind:         domain.CaseError,
		ErrorMessage: message,
	}
}
