package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/mawuli/afrivoice/internal/domain"
)

func TestDetectDelimiter(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		want     rune
		detected bool
	}{
		{name: "comma", line: "source_text,target_language", want: ',', detected: true},
		{name: "semicolon", line: "source_text;target_language;domain", want: ';', detected: true},
		{name: "tab", line: "source_text\ttarget_language", want: '\t', detected: true},
		{name: "pipe", line: "source_text|target_language", want: '|', detected: true},
		{name: "quoted delimiters ignored", line: `"a;b;c",d`, want: ',', detected: true},
		{name: "no delimiter", line: "source_text", want: ',', detected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, detected := detectDelimiter([]byte(tc.line))
			if got != tc.want {
				t.Errorf("delimiter: got %q, want %q", got, tc.want)
			}
			if detected != tc.detected {
				t.Errorf("detected: got %v, want %v", detected, tc.detected)
			}
		})
	}
}

func TestParseDelimited(t *testing.T) {
	ctx := context.Background()

	t.Run("one row per data line", func(t *testing.T) {
		data := []byte("source_text,target_language\nhello,Akan\ngoodbye,Ewe\n")
		rows, err := parseDelimited(ctx, data, domain.TaskTypeTranslation)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows: got %d, want 2", len(rows))
		}
		if rows[0]["source_text"] != "hello" || rows[1]["target_language"] != "Ewe" {
			t.Errorf("unexpected row values: %v", rows)
		}
	})

	t.Run("BOM and whitespace stripped from headers", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(" source_text , task_title\nhi,Greeting\n")...)
		rows, err := parseDelimited(ctx, data, domain.TaskTypeTranslation)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rows[0]["source_text"] != "hi" {
			t.Errorf("BOM/space not stripped: %v", rows[0])
		}
	})

	t.Run("semicolon delimited", func(t *testing.T) {
		data := []byte("text_to_speak;task_title\nAkwaaba;Welcome\n")
		rows, err := parseDelimited(ctx, data, domain.TaskTypeTTS)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rows[0]["text_to_speak"] != "Akwaaba" {
			t.Errorf("semicolon parsing failed: %v", rows[0])
		}
	})

	t.Run("missing required header names missing and found", func(t *testing.T) {
		data := []byte("transcript,task_title\nfoo,bar\n")
		_, err := parseDelimited(ctx, data, domain.TaskTypeTranscription)
		var missing *MissingHeadersError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingHeadersError, got %v", err)
		}
		if len(missing.Missing) != 1 || missing.Missing[0] != "audio_url" {
			t.Errorf("missing: got %v, want [audio_url]", missing.Missing)
		}
		if len(missing.Found) != 2 {
			t.Errorf("found: got %v, want the two actual headers", missing.Found)
		}
	})

	t.Run("field count mismatch does not abort", func(t *testing.T) {
		data := []byte("source_text,task_title\nhello,Greeting,extra\nshort\n")
		rows, err := parseDelimited(ctx, data, domain.TaskTypeTranslation)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows: got %d, want 2", len(rows))
		}
		if rows[1]["source_text"] != "short" {
			t.Errorf("short row not mapped: %v", rows[1])
		}
		if rows[1]["task_title"] != "" {
			t.Errorf("absent field should be empty: %v", rows[1])
		}
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := parseDelimited(ctx, nil, domain.TaskTypeTranslation)
		if !errors.Is(err, ErrUnparseableFile) {
			t.Errorf("expected ErrUnparseableFile, got %v", err)
		}
	})

	t.Run("header matching is case sensitive", func(t *testing.T) {
		data := []byte("Source_Text\nhello\n")
		_, err := parseDelimited(ctx, data, domain.TaskTypeTranslation)
		var missing *MissingHeadersError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingHeadersError, got %v", err)
		}
	})
}
