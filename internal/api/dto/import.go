package dto

// ImportRowError describes a single rejected row in a bulk override import.
type ImportRowError struct {
	Line   int    `json:"line"`
	PlanID string `json:"plan_id,omitempty"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk override import. Errors holds at most a
// handful of samples so the payload stays small on badly broken files; the
// full count is in ErrorCount.
type ImportResult struct {
	ImportID   string           `json:"import_id"`
	AgentID    string           `json:"agent_id"`
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Skipped    int              `json:"skipped"`
	Duplicates int              `json:"duplicates"`
	ErrorCount int              `json:"error_count"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	DryRun     bool             `json:"dry_run"`
}
