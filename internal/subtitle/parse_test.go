package subtitle

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseSRT(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	entries, err := ParseSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].StartTime != 1*time.Second {
		t.Errorf("entry 0: expected start 1s, got %v", entries[0].StartTime)
	}
	if entries[0].EndTime != 4*time.Second {
		t.Errorf("entry 0: expected end 4s, got %v", entries[0].EndTime)
	}
	if entries[0].Text != "Hello, world!" {
		t.Errorf("entry 0: expected 'Hello, world!', got %q", entries[0].Text)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if entries[1].Text != expectedText {
		t.Errorf("entry 1: expected %q, got %q", expectedText, entries[1].Text)
	}
}

func TestParseVTT(t *testing.T) {
	content := `WEBVTT

1
00:00:01.000 --> 00:00:04.000
Hello, world!

NOTE
this block should be skipped

2
00:00:05.500 --> 00:00:08.200
This is a test.
With multiple lines.

00:00:10.000 --> 00:00:12.500
No cue identifier.

01:30.000 --> 01:33.000
Short timestamp form.
`
	entries, err := ParseVTT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseVTT failed: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].StartTime != 1*time.Second {
		t.Errorf("entry 0: expected start 1s, got %v", entries[0].StartTime)
	}
	if entries[2].Text != "No cue identifier." {
		t.Errorf("entry 2: expected 'No cue identifier.', got %q", entries[2].Text)
	}
	if entries[3].StartTime != 90*time.Second {
		t.Errorf("entry 3: expected start 1m30s, got %v", entries[3].StartTime)
	}
}

func TestParseASS(t *testing.T) {
	content := `[Script Info]
Title: Test Subtitles
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize
Style: Default,Arial,20

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:04.00,Default,,0,0,0,,Hello, world!
Dialogue: 0,0:00:05.50,0:00:08.20,Default,,0,0,0,,{\pos(100,200)}This has positioning.
Dialogue: 0,0:00:10.00,0:00:12.50,Default,,0,0,0,,Line with\Nnewline.
`
	entries, err := ParseASS(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseASS failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].StartTime != 1*time.Second {
		t.Errorf("entry 0: expected start 1s, got %v", entries[0].StartTime)
	}
	if entries[0].Text != "Hello, world!" {
		t.Errorf("entry 0: expected 'Hello, world!', got %q", entries[0].Text)
	}
	if entries[1].Text != "This has positioning." {
		t.Errorf("entry 1: expected override tags stripped, got %q", entries[1].Text)
	}
	if entries[1].StartTime != 5500*time.Millisecond {
		t.Errorf("entry 1: expected start 5.5s, got %v", entries[1].StartTime)
	}
	if entries[2].Text != "Line with\nnewline." {
		t.Errorf("entry 2: expected newline conversion, got %q", entries[2].Text)
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	tmpDir := t.TempDir()
	txtPath := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(txtPath, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := Open(txtPath)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected 'unsupported' in error, got: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.srt")); err == nil {
		t.Error("expected error for missing file")
	}
}

// Parsing the same file twice must produce identical cue sequences.
func TestOpenDeterministic(t *testing.T) {
	content := `1
00:00:00,000 --> 00:00:02,000
first

2
00:00:02,000 --> 00:00:04,000
second
`
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	first, err := Open(srtPath)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	second, err := Open(srtPath)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}

	if !reflect.DeepEqual(first.Cues(), second.Cues()) {
		t.Errorf("cue sequences differ between parses:\n%v\n%v", first.Cues(), second.Cues())
	}
}

func TestWriteAndReparseSRT(t *testing.T) {
	track := &Track{
		Entries: []Entry{
			{Index: 1, StartTime: time.Second, EndTime: 2 * time.Second, Text: "one"},
			{Index: 2, StartTime: 3 * time.Second, EndTime: 4 * time.Second, Text: "two\nlines"},
		},
		Format: FormatSRT,
	}

	path := filepath.Join(t.TempDir(), "out.srt")
	writer, err := NewWriter(FormatSRT)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(track, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	parsed, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed.Entries))
	}
	if parsed.Entries[1].Text != "two\nlines" {
		t.Errorf("expected multiline text preserved, got %q", parsed.Entries[1].Text)
	}
}
