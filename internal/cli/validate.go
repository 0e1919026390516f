package cli

import "strings"

// isValidOpenAITranscriptLanguage reports whether the requested transcript
// language is usable with Whisper, which can only keep the original
// language or translate to English.
func isValidOpenAITranscriptLanguage(lang string) bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "native", "english", "en":
		return true
	}
	return false
}
