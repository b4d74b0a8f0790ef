package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	speakerOneKey   = "Name of speaker1"
	speakerTwoKey   = "Name of speaker2"
	conflictTypeKey = "conflict type (Orig_type)"
	descriptionKey  = "conflict description"

	minLooseLineRunes    = 20
	minFallbackLineRunes = 30
)

var (
	sectionEndRe     = regexp.MustCompile(`^#{2,3}\s+`)
	looseConflictRe  = regexp.MustCompile(`(?i)disagree|conflict|concern|issue|problem`)
	fallbackKeywords = regexp.MustCompile(`(?i)concern|disagree|conflict|issue|problem|dispute`)
)

// ExtractConflicts recovers conflict records from the JSON-lines block under
// a "Conflict Detection" heading. When that yields nothing, every long line
// mentioning a dispute keyword becomes a Medium record. The returned slice
// is never nil.
func ExtractConflicts(analysisText string) []ConflictRecord {
	conflicts, _ := extractConflicts(splitLines(analysisText))
	return conflicts
}

func extractConflicts(lines []string) ([]ConflictRecord, Source) {
	if section := conflictSectionPass(lines); len(section.Records) > 0 {
		return section.Records, SourceSection
	}
	if fallback := fallbackPass(lines); len(fallback.Records) > 0 {
		return fallback.Records, SourceFallback
	}
	return []ConflictRecord{}, SourceNone
}

func conflictSectionPass(lines []string) Pass[ConflictRecord] {
	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "conflict detection") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return missing[ConflictRecord]()
	}

	records := []ConflictRecord{}
	for _, line := range lines[start:] {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if sectionEndRe.MatchString(t) {
			break
		}
		if rec, ok := parseConflictLine(t); ok {
			records = append(records, rec)
			continue
		}
		if utf8.RuneCountInString(t) > minLooseLineRunes && !strings.HasPrefix(t, "#") && looseConflictRe.MatchString(t) {
			records = append(records, ConflictRecord{Issue: t, Severity: SeverityMedium})
		}
	}
	return found(records)
}

// parseConflictLine decodes one JSON object line. Only string values are
// read; anything else counts as absent.
func parseConflictLine(line string) (ConflictRecord, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(line), &obj); err != nil || obj == nil {
		return ConflictRecord{}, false
	}

	speakers := make([]string, 0, 2)
	for _, key := range []string{speakerOneKey, speakerTwoKey} {
		if name := stringField(obj, key); name != "" {
			speakers = append(speakers, name)
		}
	}

	return ConflictRecord{
		Issue:    stringField(obj, descriptionKey),
		RaisedBy: strings.Join(speakers, " vs "),
		Severity: severityFor(stringField(obj, conflictTypeKey)),
	}, true
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// severityFor maps a conflict sentiment label onto a severity.
func severityFor(conflictType string) Severity {
	t := strings.ToLower(conflictType)
	switch {
	case strings.Contains(t, "negative"):
		return SeverityHigh
	case strings.Contains(t, "neutral"):
		return SeverityLow
	default:
		return SeverityMedium
	}
}

func fallbackPass(lines []string) Pass[ConflictRecord] {
	records := []ConflictRecord{}
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if utf8.RuneCountInString(t) > minFallbackLineRunes && fallbackKeywords.MatchString(t) {
			records = append(records, ConflictRecord{Issue: t, Severity: SeverityMedium})
		}
	}
	return found(records)
}
