// Package extraction turns free-form meeting analysis text into task and
// conflict records. All functions are pure and safe for concurrent use.
package extraction

import "strings"

// Extract runs both the task and the conflict scanners over one line split.
func Extract(analysisText string) Result {
	lines := splitLines(analysisText)
	tasks, taskSource := extractTasks(lines)
	conflicts, conflictSource := extractConflicts(lines)
	return Result{
		Tasks:          tasks,
		Conflicts:      conflicts,
		TaskSource:     taskSource,
		ConflictSource: conflictSource,
	}
}

// Empty reports whether nothing was extracted.
func (r Result) Empty() bool {
	return len(r.Tasks) == 0 && len(r.Conflicts) == 0
}

func splitLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
