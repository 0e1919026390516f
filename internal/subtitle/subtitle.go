package subtitle

import (
	"math"
	"sort"
	"time"
)

// Entry is a single timed caption in a subtitle file.
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Track is a complete subtitle track.
type Track struct {
	Entries  []Entry
	Language string
	Format   Format
}

// Format identifies a subtitle file format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// Segment is a transcribed span of audio.
type Segment struct {
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Generator converts transcription segments into subtitle entries.
type Generator interface {
	Generate(segments []Segment) (*Track, error)
}

// Writer serializes a track to a file.
type Writer interface {
	Write(track *Track, path string) error
}

// Cue is the burn-facing view of an entry: display text and the moment it
// becomes active. A cue stays active until the next cue starts; there is no
// explicit end time.
type Cue struct {
	Text  string
	Start time.Duration
}

// Cues returns the track's entries as a cue sequence ordered by start time.
func (t *Track) Cues() []Cue {
	cues := make([]Cue, 0, len(t.Entries))
	for _, entry := range t.Entries {
		cues = append(cues, Cue{Text: entry.Text, Start: entry.StartTime})
	}
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
	return cues
}

// FromSegments wraps already-timed transcript segments in a track without
// reflowing the text.
func FromSegments(segments []Segment) *Track {
	entries := make([]Entry, 0, len(segments))
	for i, seg := range segments {
		entries = append(entries, Entry{
			Index:     i + 1,
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
			Text:      seg.Text,
		})
	}
	return &Track{Entries: entries}
}

// StartFrame returns the cue's start rounded to the nearest frame boundary.
func (c Cue) StartFrame(fps float64) int {
	return int(math.Round(c.Start.Seconds() * fps))
}

// CueIndexAt selects the most recently started cue for a frame index: the
// cue with the latest start frame not after the given frame. The cue slice
// must be ordered by start time. Returns false when no cue has started yet.
func CueIndexAt(cues []Cue, frame int, fps float64) (int, bool) {
	// first cue whose start frame is after the current frame
	next := sort.Search(len(cues), func(i int) bool {
		return cues[i].StartFrame(fps) > frame
	})
	if next == 0 {
		return 0, false
	}
	return next - 1, true
}
