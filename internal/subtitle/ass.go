package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	assTimeRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{2})$`)
	assTagRegex  = regexp.MustCompile(`\{[^}]*\}`)
)

// ParseASS reads Dialogue events from an ASS/SSA script. Styling and
// override tags are dropped; only timing and text survive.
func ParseASS(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	inEvents := false
	fieldOrder := []string{}
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") {
			inEvents = strings.EqualFold(trimmed, "[Events]")
			continue
		}
		if !inEvents {
			continue
		}

		if value, ok := strings.CutPrefix(trimmed, "Format:"); ok {
			fieldOrder = nil
			for _, field := range strings.Split(value, ",") {
				fieldOrder = append(fieldOrder, strings.TrimSpace(field))
			}
			continue
		}

		value, ok := strings.CutPrefix(trimmed, "Dialogue:")
		if !ok {
			continue
		}
		if len(fieldOrder) == 0 {
			return nil, fmt.Errorf("dialogue before format line at line %d", lineNum)
		}

		// the final field (Text) may itself contain commas
		fields := strings.SplitN(value, ",", len(fieldOrder))
		if len(fields) != len(fieldOrder) {
			return nil, fmt.Errorf("malformed dialogue at line %d", lineNum)
		}

		entry := Entry{Index: len(entries) + 1}
		for i, name := range fieldOrder {
			field := strings.TrimSpace(fields[i])
			switch name {
			case "Start":
				start, err := parseASSTime(field)
				if err != nil {
					return nil, fmt.Errorf("invalid start time at line %d: %w", lineNum, err)
				}
				entry.StartTime = start
			case "End":
				end, err := parseASSTime(field)
				if err != nil {
					return nil, fmt.Errorf("invalid end time at line %d: %w", lineNum, err)
				}
				entry.EndTime = end
			case "Text":
				entry.Text = cleanASSText(fields[i])
			}
		}

		if entry.Text != "" {
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASS data: %w", err)
	}

	return entries, nil
}

// parseASSTime parses H:MM:SS.CC centisecond timestamps.
func parseASSTime(s string) (time.Duration, error) {
	matches := assTimeRegex.FindStringSubmatch(s)
	if len(matches) != 5 {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}

	h, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, err
	}
	sec, err := strconv.Atoi(matches[3])
	if err != nil {
		return 0, err
	}
	cs, err := strconv.Atoi(matches[4])
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(cs)*10*time.Millisecond, nil
}

func cleanASSText(text string) string {
	text = assTagRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\N`, "\n")
	text = strings.ReplaceAll(text, `\n`, "\n")
	return strings.TrimSpace(text)
}
