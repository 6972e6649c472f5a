package shared

// DiagnosticClass groups non-fatal problems found while deriving views.
type DiagnosticClass string

const (
	// ValidationWarning covers input that was ignored or replaced by a fallback.
	ValidationWarning DiagnosticClass = "validation_warning"
	// UnresolvedReference covers a reference to an entity missing from the snapshot.
	UnresolvedReference DiagnosticClass = "unresolved_reference"
)

// Diagnostic is a non-fatal finding. Processing always continues past one.
type Diagnostic struct {
	Class      DiagnosticClass `json:"class"`
	Message    string          `json:"message"`
	SeatID     string          `json:"seat_id,omitempty"`
	EmployeeID string          `json:"employee_id,omitempty"`
}
