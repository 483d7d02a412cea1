package domain

// TestMethod identifies a declared test method
type TestMethod struct {
	ClassName string   // Declaring class name
	Name      string   // Test method name
	FilePath  string   // Path to the test file declaring this method
	Params    []string // Formal parameter names, in declaration order
}

// DisplayName returns the PHPUnit-style qualified name (Class::method)
func (m TestMethod) DisplayName() string {
	return m.ClassName + "::" + m.Name
}

// DirectiveKind identifies how a data-provider directive sources its rows
type DirectiveKind int

const (
	// DirectiveInline carries literal rows in the declaration itself (@testWith / #[TestWith])
	DirectiveInline DirectiveKind = iota
	// DirectiveMember references a provider method on the same class (@dataProvider / #[DataProvider])
	DirectiveMember
	// DirectiveExternalMember references a provider method on another class (#[DataProviderExternal])
	DirectiveExternalMember
	// DirectiveFile loads rows from a CSV or JSON file next to the suite (@dataFile)
	DirectiveFile
)

// String returns a short annotation-style name for the directive kind
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveInline:
		return "testWith"
	case DirectiveMember:
		return "dataProvider"
	case DirectiveExternalMember:
		return "dataProviderExternal"
	case DirectiveFile:
		return "dataFile"
	}
	return "unknown"
}

// RowSyntax tells an inline directive how its raw rows are written
type RowSyntax int

const (
	// RowsJSON means one JSON array per row (docblock @testWith)
	RowsJSON RowSyntax = iota
	// RowsPHP means a PHP array literal per row (#[TestWith] attribute)
	RowsPHP
)

// DataProviderDirective is one data-source annotation attached to a test method.
// A method may carry several; their declaration order must be preserved.
type DataProviderDirective struct {
	Kind DirectiveKind
	// Target is the provider method name for member kinds, or the file path
	// for file kinds. Empty for inline directives.
	Target string
	// TargetClass is the owning class for external member references
	TargetClass string
	// InlineRows holds the raw row literals for inline directives, one per row
	InlineRows []string
	// Syntax of InlineRows
	Syntax RowSyntax
}

// DataRow is one ordered argument list for a parameterized test
type DataRow struct {
	Values []any
	// Label is the data set name when the provider names its rows, otherwise empty
	Label string
}

// Declaration couples a test method with its data-provider directives and
// its declaration-level skip, as read from the PHP source
type Declaration struct {
	Method     TestMethod
	Directives []DataProviderDirective
	// SkipReason is non-empty when the method is marked skipped (@skip / #[Skip])
	SkipReason string
}

// Parameterized reports whether the declaration carries any data-provider directive
func (d Declaration) Parameterized() bool {
	return len(d.Directives) > 0
}
