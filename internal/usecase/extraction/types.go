package extraction

// TaskRecord is an action item recovered from analysis text.
type TaskRecord struct {
	Person   string `json:"person"`
	Task     string `json:"task"`
	Deadline string `json:"deadline"`
}

// Severity of a conflict record.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// ConflictRecord is a disagreement recovered from analysis text.
// Resolution is always empty at extraction time.
type ConflictRecord struct {
	Issue      string   `json:"issue"`
	RaisedBy   string   `json:"raised_by"`
	Resolution string   `json:"resolution"`
	Severity   Severity `json:"severity"`
}

// Outcome tags the result of a single scanning pass.
type Outcome int

const (
	// SectionMissing means the pass did not find the structure it looks for.
	SectionMissing Outcome = iota
	// SectionFound means the structure was found; Records may still be empty.
	SectionFound
)

func (o Outcome) String() string {
	if o == SectionFound {
		return "found"
	}
	return "missing"
}

// Pass is the tagged result of one scanning pass over pre-split lines.
type Pass[T any] struct {
	Outcome Outcome
	Records []T
}

func missing[T any]() Pass[T] {
	return Pass[T]{Outcome: SectionMissing, Records: []T{}}
}

func found[T any](records []T) Pass[T] {
	if records == nil {
		records = []T{}
	}
	return Pass[T]{Outcome: SectionFound, Records: records}
}

// Source names the pass that produced a result's records.
type Source string

const (
	SourceNone     Source = "none"
	SourceTable    Source = "table"
	SourceBullets  Source = "bullets"
	SourceSection  Source = "section"
	SourceFallback Source = "fallback"
)

// Result bundles both record kinds extracted from one analysis text.
type Result struct {
	Tasks          []TaskRecord     `json:"tasks"`
	Conflicts      []ConflictRecord `json:"conflicts"`
	TaskSource     Source           `json:"task_source"`
	ConflictSource Source           `json:"conflict_source"`
}
