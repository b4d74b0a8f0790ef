package ai

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	pkgai "github.com/johnquangdev/minutemind/pkg/ai"
)

// DefaultMergeGap is the largest pause, in seconds, between two turns of the
// same speaker that still counts as one segment.
const DefaultMergeGap = 0.5

// SegmentsFromUtterances converts AssemblyAI utterances into segments.
func SegmentsFromUtterances(utterances []pkgai.Utterance) []entities.Segment {
	segments := make([]entities.Segment, 0, len(utterances))
	for _, u := range utterances {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		segments = append(segments, entities.Segment{
			Start:   u.Start,
			End:     u.End,
			Text:    text,
			Speaker: speakerLabel(u.Speaker),
		})
	}
	return segments
}

// MergeSegments joins adjacent segments of the same speaker whose gap is at
// most maxGap seconds. The input is not modified.
func MergeSegments(segments []entities.Segment, maxGap float64) []entities.Segment {
	merged := make([]entities.Segment, 0, len(segments))
	for _, seg := range segments {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.Speaker == seg.Speaker && seg.Start-last.End <= maxGap {
				last.End = seg.End
				last.Text = last.Text + " " + seg.Text
				continue
			}
		}
		merged = append(merged, seg)
	}
	return merged
}

// FormatTranscript renders segments as "Speaker: text" lines for the prompt.
func FormatTranscript(segments []entities.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", seg.Speaker, seg.Text)
	}
	return b.String()
}

// speakerLabel turns AssemblyAI's bare "A", "B" labels into readable names.
func speakerLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Unknown Speaker"
	}
	if len(raw) <= 2 {
		return "Speaker " + raw
	}
	return raw
}
