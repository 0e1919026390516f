package subtitle

import (
	"testing"
	"time"
)

func TestCueIndexAtBeforeFirstCue(t *testing.T) {
	cues := []Cue{
		{Text: "first", Start: 2 * time.Second},
		{Text: "second", Start: 4 * time.Second},
	}

	// frames 0..59 precede the first cue's start frame at 30 fps
	for frame := 0; frame < 60; frame++ {
		if _, ok := CueIndexAt(cues, frame, 30); ok {
			t.Fatalf("frame %d: expected no active cue", frame)
		}
	}

	if idx, ok := CueIndexAt(cues, 60, 30); !ok || idx != 0 {
		t.Errorf("frame 60: expected cue 0 active, got idx=%d ok=%v", idx, ok)
	}
}

// Every frame in [S, S') selects the cue starting at S; frames at and after
// S' select the next cue.
func TestCueIndexAtWindows(t *testing.T) {
	cues := []Cue{
		{Text: "a", Start: 1 * time.Second},
		{Text: "b", Start: 3 * time.Second},
		{Text: "c", Start: 5 * time.Second},
	}
	const fps = 30.0

	for frame := 30; frame < 90; frame++ {
		idx, ok := CueIndexAt(cues, frame, fps)
		if !ok || idx != 0 {
			t.Fatalf("frame %d: expected cue 0, got idx=%d ok=%v", frame, idx, ok)
		}
	}
	for frame := 90; frame < 150; frame++ {
		idx, ok := CueIndexAt(cues, frame, fps)
		if !ok || idx != 1 {
			t.Fatalf("frame %d: expected cue 1, got idx=%d ok=%v", frame, idx, ok)
		}
	}
	// last cue stays active forever
	for _, frame := range []int{150, 151, 1000, 100000} {
		idx, ok := CueIndexAt(cues, frame, fps)
		if !ok || idx != 2 {
			t.Fatalf("frame %d: expected cue 2, got idx=%d ok=%v", frame, idx, ok)
		}
	}
}

func TestCueIndexAtEmpty(t *testing.T) {
	if _, ok := CueIndexAt(nil, 0, 30); ok {
		t.Error("expected no cue for empty sequence")
	}
}

func TestStartFrameRounding(t *testing.T) {
	tests := []struct {
		start time.Duration
		fps   float64
		want  int
	}{
		{0, 30, 0},
		{time.Second, 30, 30},
		{1516 * time.Millisecond, 30, 45},   // 45.48 rounds down
		{1517 * time.Millisecond, 30, 46},   // 45.51 rounds up
		{time.Second, 29.97, 30},            // NTSC rate
		{100 * time.Millisecond, 23.976, 2}, // 2.3976 rounds down
	}

	for _, tt := range tests {
		cue := Cue{Start: tt.start}
		if got := cue.StartFrame(tt.fps); got != tt.want {
			t.Errorf("StartFrame(%v, %v) = %d, want %d", tt.start, tt.fps, got, tt.want)
		}
	}
}

func TestCuesOrdered(t *testing.T) {
	track := &Track{
		Entries: []Entry{
			{Index: 1, StartTime: 5 * time.Second, Text: "late"},
			{Index: 2, StartTime: 1 * time.Second, Text: "early"},
			{Index: 3, StartTime: 3 * time.Second, Text: "middle"},
		},
	}

	cues := track.Cues()
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	if cues[0].Text != "early" || cues[1].Text != "middle" || cues[2].Text != "late" {
		t.Errorf("cues not ordered by start time: %v", cues)
	}
}

func TestFromSegments(t *testing.T) {
	segments := []Segment{
		{StartTime: 0, EndTime: time.Second, Text: "one"},
		{StartTime: time.Second, EndTime: 2 * time.Second, Text: "two"},
	}

	track := FromSegments(segments)
	if len(track.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(track.Entries))
	}
	if track.Entries[0].Index != 1 || track.Entries[1].Index != 2 {
		t.Error("expected 1-based indices")
	}
	if track.Entries[1].Text != "two" {
		t.Errorf("expected text preserved, got %q", track.Entries[1].Text)
	}
}
