package domain

// ImportStatus tags the outcome of a template import. Partial is a success
// variant: some workout groups were persisted and the rest were not, so
// callers must check the advisory Error before treating the plan as fully
// populated.
type ImportStatus string

const (
	ImportStatusComplete ImportStatus = "complete"
	ImportStatusPartial  ImportStatus = "partial"
	ImportStatusFailed   ImportStatus = "failed"
)

// ImportResult is returned once per import invocation; never persisted
type ImportResult struct {
	Status       ImportStatus `json:"status"`
	ItemsCreated int          `json:"items_created"`
	Error        string       `json:"error,omitempty"`
}

// Success reports whether any work was persisted. True for partial imports;
// inspect Error to detect degradation.
func (r ImportResult) Success() bool {
	return r.Status != ImportStatusFailed
}
