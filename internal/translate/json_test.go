package translate

import (
	"reflect"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `[{"index": 0}]`, `[{"index": 0}]`},
		{"json fence", "```json\n[{\"index\": 0}]\n```", `[{"index": 0}]`},
		{"bare fence", "```\n[1]\n```", "[1]"},
		{"whitespace", "  [1]\n", "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", `plain text`, `plain text`},
		{"valid escapes untouched", `line\none\ttab \"quoted\"`, `line\none\ttab \"quoted\"`},
		{"ass newline doubled", `first\Nsecond`, `first\\Nsecond`},
		{"unicode escape untouched", `é`, `é`},
		{"trailing backslash", `end\`, `end\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixInvalidEscapes(tt.input); got != tt.want {
				t.Errorf("fixInvalidEscapes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractTranslationResultsPlainArray(t *testing.T) {
	text := `[{"index": 0, "text": "hola"}, {"index": 1, "text": "adios"}]`

	results, err := extractTranslationResults(text)
	if err != nil {
		t.Fatalf("extractTranslationResults failed: %v", err)
	}

	want := []TranslationResult{
		{Index: 0, Text: "hola"},
		{Index: 1, Text: "adios"},
	}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("results = %+v, want %+v", results, want)
	}
}

func TestExtractTranslationResultsWithLeadingProse(t *testing.T) {
	text := `Here are the translations:
[{"index": 0, "text": "bonjour"}]`

	results, err := extractTranslationResults(text)
	if err != nil {
		t.Fatalf("extractTranslationResults failed: %v", err)
	}
	if len(results) != 1 || results[0].Text != "bonjour" {
		t.Errorf("results = %+v", results)
	}
}

func TestExtractTranslationResultsWrappedObject(t *testing.T) {
	for _, key := range []string{"results", "translations", "data", "items"} {
		text := `{"` + key + `": [{"index": 0, "text": "ciao"}]}`

		results, err := extractTranslationResults(text)
		if err != nil {
			t.Fatalf("key %q: extractTranslationResults failed: %v", key, err)
		}
		if len(results) != 1 || results[0].Text != "ciao" {
			t.Errorf("key %q: results = %+v", key, results)
		}
	}
}

func TestExtractTranslationResultsPreservesASSNewlines(t *testing.T) {
	text := `[{"index": 0, "text": "first\Nsecond"}]`

	results, err := extractTranslationResults(text)
	if err != nil {
		t.Fatalf("extractTranslationResults failed: %v", err)
	}
	if results[0].Text != `first\Nsecond` {
		t.Errorf("text = %q, want literal \\N preserved", results[0].Text)
	}
}

func TestExtractTranslationResultsNoJSON(t *testing.T) {
	if _, err := extractTranslationResults("sorry, I cannot translate that"); err == nil {
		t.Error("expected error for response without JSON")
	}
}

func TestExtractTranslationResultsAllEmptyTexts(t *testing.T) {
	if _, err := extractTranslationResults(`[{"index": 0, "text": ""}]`); err == nil {
		t.Error("expected error when every result text is empty")
	}
}
