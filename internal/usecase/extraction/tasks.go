package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	headerLookahead = 10
	bulletWindow    = 20
	minBulletRunes  = 10
)

var (
	headerCellRe     = regexp.MustCompile(`(?i)task|owner|deadline`)
	taskCellRe       = regexp.MustCompile(`(?i)task`)
	ownerCellRe      = regexp.MustCompile(`(?i)owner`)
	separatorRowRe   = regexp.MustCompile(`^\|[\s:|-]*-[\s:|-]*$`)
	bulletMarkerRe   = regexp.MustCompile(`^[-*]\s*`)
	numberedPrefixRe = regexp.MustCompile(`^\d+\.\s*`)
	numberedLineRe   = regexp.MustCompile(`^\d+\.`)
)

// ExtractTasks recovers task records from analysis text. A Markdown table
// under a "Task Assignment" heading wins; a bullet list under a "Task
// Assignment" or "Action Item" heading is used only when no table rows
// were found. The returned slice is never nil.
func ExtractTasks(analysisText string) []TaskRecord {
	tasks, _ := extractTasks(splitLines(analysisText))
	return tasks
}

func extractTasks(lines []string) ([]TaskRecord, Source) {
	if table := tablePass(lines); len(table.Records) > 0 {
		return table.Records, SourceTable
	}
	if bullets := bulletPass(lines); len(bullets.Records) > 0 {
		return bullets.Records, SourceBullets
	}
	return []TaskRecord{}, SourceNone
}

// tablePass reads the first Task/Owner/Deadline table that follows a
// "task assignment" heading within the lookahead window.
func tablePass(lines []string) Pass[TaskRecord] {
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "task assignment") {
			continue
		}
		header := findHeaderRow(lines, i+1)
		if header < 0 {
			continue
		}
		return found(readTableRows(lines, header+1))
	}
	return missing[TaskRecord]()
}

func findHeaderRow(lines []string, from int) int {
	end := min(from+headerLookahead, len(lines))
	for j := from; j < end; j++ {
		t := strings.TrimSpace(lines[j])
		if strings.HasPrefix(t, "|") && headerCellRe.MatchString(t) {
			return j
		}
	}
	return -1
}

func readTableRows(lines []string, from int) []TaskRecord {
	records := []TaskRecord{}
	for j := from; j < len(lines); j++ {
		row := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(row, "|") {
			break
		}
		if separatorRowRe.MatchString(row) {
			continue
		}
		cells := splitCells(row)
		if len(cells) < 2 {
			break
		}
		if taskCellRe.MatchString(cells[0]) && ownerCellRe.MatchString(cells[1]) {
			continue
		}
		rec := TaskRecord{Task: cells[0], Person: cells[1]}
		if len(cells) > 2 {
			rec.Deadline = cells[2]
		}
		records = append(records, rec)
	}
	return records
}

// splitCells splits a table row on '|', trims every cell and drops the
// empty ones, so cells shift left when a column is blank.
func splitCells(row string) []string {
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// bulletPass reads list items following the first task or action item
// heading. Only that first heading is considered.
func bulletPass(lines []string) Pass[TaskRecord] {
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "task assignment") && !strings.Contains(lower, "action item") {
			continue
		}
		records := []TaskRecord{}
		end := min(i+1+bulletWindow, len(lines))
		for j := i + 1; j < end; j++ {
			t := strings.TrimSpace(lines[j])
			if !isListItem(t) {
				continue
			}
			text := bulletMarkerRe.ReplaceAllString(t, "")
			text = strings.TrimSpace(numberedPrefixRe.ReplaceAllString(text, ""))
			if utf8.RuneCountInString(text) > minBulletRunes {
				records = append(records, TaskRecord{Task: text})
			}
		}
		return found(records)
	}
	return missing[TaskRecord]()
}

func isListItem(t string) bool {
	return strings.HasPrefix(t, "-") || strings.HasPrefix(t, "*") || numberedLineRe.MatchString(t)
}
