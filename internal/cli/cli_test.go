package cli

import "testing"

func TestIsValidOpenAITranscriptLanguage(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"", true},
		{"native", true},
		{"Native", true},
		{"NATIVE", true},
		{" native ", true},
		{"english", true},
		{"English", true},
		{" english ", true},
		{"en", true},
		{"EN", true},

		{"spanish", false},
		{"french", false},
		{"german", false},
		{"japanese", false},
		{"es", false},
		{"fr", false},
		{"ja", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got := isValidOpenAITranscriptLanguage(tt.lang)
			if got != tt.want {
				t.Errorf("isValidOpenAITranscriptLanguage(%q) = %v, want %v",
					tt.lang, got, tt.want)
			}
		})
	}
}

func TestSanitizeLangSuffix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"japanese", "japanese"},
		{"Japanese", "japanese"},
		{"Portuguese (Brazil)", "portuguese-brazil"},
		{"  spaced  out  ", "spaced-out"},
		{"zh-CN", "zh-cn"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeLangSuffix(tt.input); got != tt.want {
				t.Errorf("sanitizeLangSuffix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
