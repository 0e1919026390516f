package subtitle

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateEmpty(t *testing.T) {
	gen := NewDefaultGenerator()

	track, err := gen.Generate(nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(track.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(track.Entries))
	}
}

func TestGenerateSkipsBlankSegments(t *testing.T) {
	gen := NewDefaultGenerator()

	track, err := gen.Generate([]Segment{
		{StartTime: 0, EndTime: time.Second, Text: "   "},
		{StartTime: time.Second, EndTime: 2 * time.Second, Text: "kept"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(track.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(track.Entries))
	}
	if track.Entries[0].Text != "kept" {
		t.Errorf("expected 'kept', got %q", track.Entries[0].Text)
	}
}

func TestGenerateSplitsLongSegment(t *testing.T) {
	gen := NewDefaultGenerator()

	text := strings.Repeat("word ", 40) // 200 chars, well past one entry
	track, err := gen.Generate([]Segment{
		{StartTime: 0, EndTime: 10 * time.Second, Text: text},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(track.Entries) < 2 {
		t.Fatalf("expected split into multiple entries, got %d", len(track.Entries))
	}

	// splits must tile the original span
	if track.Entries[0].StartTime != 0 {
		t.Errorf("first split should start at 0, got %v", track.Entries[0].StartTime)
	}
	last := track.Entries[len(track.Entries)-1]
	if last.EndTime != 10*time.Second {
		t.Errorf("last split should end at 10s, got %v", last.EndTime)
	}
	for i := 1; i < len(track.Entries); i++ {
		if track.Entries[i].StartTime != track.Entries[i-1].EndTime {
			t.Errorf("split %d does not start where %d ends", i, i-1)
		}
	}
}

func TestWrapText(t *testing.T) {
	gen := NewDefaultGenerator()

	short := "fits on one line"
	if got := gen.wrapText(short); got != short {
		t.Errorf("short text should be unchanged, got %q", got)
	}

	long := "this sentence is definitely too long to fit on a single subtitle line"
	wrapped := gen.wrapText(long)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
	if strings.Join(strings.Fields(wrapped), " ") != long {
		t.Errorf("wrapping must not alter words: %q", wrapped)
	}
}
