package subtitle

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultGenerator reflows transcription segments into display-sized entries.
type DefaultGenerator struct {
	MaxCharsPerLine int
	MaxLinesPerSub  int
	MaxDuration     time.Duration
}

func NewDefaultGenerator() *DefaultGenerator {
	return &DefaultGenerator{
		MaxCharsPerLine: 42, // standard subtitle line length
		MaxLinesPerSub:  2,
		MaxDuration:     7 * time.Second,
	}
}

func (g *DefaultGenerator) Generate(segments []Segment) (*Track, error) {
	var entries []Entry
	index := 1

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		if g.needsSplit(text, seg.EndTime-seg.StartTime) {
			split := g.splitSegment(seg, index)
			entries = append(entries, split...)
			index += len(split)
			continue
		}

		entries = append(entries, Entry{
			Index:     index,
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
			Text:      g.wrapText(text),
		})
		index++
	}

	if entries == nil {
		entries = []Entry{}
	}

	return &Track{Entries: entries, Format: FormatSRT}, nil
}

func (g *DefaultGenerator) needsSplit(text string, duration time.Duration) bool {
	if utf8.RuneCountInString(text) > g.MaxCharsPerLine*g.MaxLinesPerSub {
		return true
	}
	return duration > g.MaxDuration
}

// splitSegment divides an oversized segment into entries, distributing words
// evenly and keeping the original time span.
func (g *DefaultGenerator) splitSegment(seg Segment, startIndex int) []Entry {
	text := strings.TrimSpace(seg.Text)
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	totalDuration := seg.EndTime - seg.StartTime
	maxChars := g.MaxCharsPerLine * g.MaxLinesPerSub

	numSplits := (utf8.RuneCountInString(text) + maxChars - 1) / maxChars
	if numSplits < 1 {
		numSplits = 1
	}
	if byDuration := int(totalDuration/g.MaxDuration) + 1; byDuration > numSplits {
		numSplits = byDuration
	}

	wordsPerSplit := (len(words) + numSplits - 1) / numSplits
	durationPerSplit := totalDuration / time.Duration(numSplits)

	var entries []Entry
	currentStart := seg.StartTime

	for i := 0; i < numSplits && len(words) > 0; i++ {
		take := wordsPerSplit
		if take > len(words) {
			take = len(words)
		}

		splitText := strings.Join(words[:take], " ")
		words = words[take:]

		currentEnd := currentStart + durationPerSplit
		if len(words) == 0 {
			currentEnd = seg.EndTime
		}

		entries = append(entries, Entry{
			Index:     startIndex + i,
			StartTime: currentStart,
			EndTime:   currentEnd,
			Text:      g.wrapText(splitText),
		})

		currentStart = currentEnd
	}

	return entries
}

// wrapText breaks long text into two lines at the word boundary nearest the
// middle.
func (g *DefaultGenerator) wrapText(text string) string {
	text = strings.TrimSpace(text)
	runeCount := utf8.RuneCountInString(text)
	if runeCount <= g.MaxCharsPerLine {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	middle := runeCount / 2
	bestSplit := 0
	bestDiff := runeCount

	currentLen := 0
	for i, word := range words[:len(words)-1] {
		currentLen += utf8.RuneCountInString(word)
		if i > 0 {
			currentLen++ // space
		}

		diff := currentLen - middle
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			bestSplit = i + 1
		}
	}

	if bestSplit > 0 && bestSplit < len(words) {
		return strings.Join(words[:bestSplit], " ") + "\n" + strings.Join(words[bestSplit:], " ")
	}

	return text
}
