package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	pkgai "github.com/johnquangdev/minutemind/pkg/ai"
)

func TestMergeSegments(t *testing.T) {
	in := []entities.Segment{
		{Start: 0, End: 1.0, Text: "Hello", Speaker: "Speaker A"},
		{Start: 1.4, End: 2.0, Text: "everyone.", Speaker: "Speaker A"},
		{Start: 2.6, End: 3.0, Text: "Late start.", Speaker: "Speaker A"},
		{Start: 3.1, End: 4.0, Text: "Hi.", Speaker: "Speaker B"},
	}

	out := MergeSegments(in, DefaultMergeGap)

	assert.Equal(t, []entities.Segment{
		{Start: 0, End: 2.0, Text: "Hello everyone.", Speaker: "Speaker A"},
		{Start: 2.6, End: 3.0, Text: "Late start.", Speaker: "Speaker A"},
		{Start: 3.1, End: 4.0, Text: "Hi.", Speaker: "Speaker B"},
	}, out)
	assert.Equal(t, "Hello", in[0].Text)
}

func TestMergeSegments_GapExactlyAtThreshold(t *testing.T) {
	in := []entities.Segment{
		{Start: 0, End: 1, Text: "a", Speaker: "X"},
		{Start: 1.5, End: 2, Text: "b", Speaker: "X"},
	}
	out := MergeSegments(in, 0.5)
	assert.Len(t, out, 1)
	assert.Equal(t, "a b", out[0].Text)
}

func TestMergeSegments_Empty(t *testing.T) {
	assert.Empty(t, MergeSegments(nil, DefaultMergeGap))
}

func TestSegmentsFromUtterances(t *testing.T) {
	segments := SegmentsFromUtterances([]pkgai.Utterance{
		{Speaker: "A", Text: " Morning. ", Start: 0, End: 1},
		{Speaker: "", Text: "Who's this?", Start: 1, End: 2},
		{Speaker: "B", Text: "  ", Start: 2, End: 3},
		{Speaker: "Dana", Text: "Me.", Start: 3, End: 4},
	})

	assert.Equal(t, []entities.Segment{
		{Start: 0, End: 1, Text: "Morning.", Speaker: "Speaker A"},
		{Start: 1, End: 2, Text: "Who's this?", Speaker: "Unknown Speaker"},
		{Start: 3, End: 4, Text: "Me.", Speaker: "Dana"},
	}, segments)
}

func TestFormatTranscript(t *testing.T) {
	out := FormatTranscript([]entities.Segment{
		{Text: "Hi.", Speaker: "Speaker A"},
		{Text: "Hello.", Speaker: "Speaker B"},
	})
	assert.Equal(t, "Speaker A: Hi.\nSpeaker B: Hello.", out)
}
