package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
	StatusSkip Status = "SKIP"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "database:pgsql", "ldap"
	Status  Status   // OK, FAIL or SKIP
	Message string   // headline shown next to the status glyph
	Details []string // human-readable lines printed under the headline
	Err     error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Skipped returns true if the check was not attempted.
func (r Result) Skipped() bool {
	return r.Status == StatusSkip
}
