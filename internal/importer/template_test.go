package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/mawuli/afrivoice/internal/domain"
)

func TestTemplateIdempotent(t *testing.T) {
	for _, taskType := range []domain.TaskType{
		domain.TaskTypeTranslation,
		domain.TaskTypeTTS,
		domain.TaskTypeTranscription,
	} {
		t.Run(string(taskType), func(t *testing.T) {
			first, err := Template(taskType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			second, err := Template(taskType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Error("template output is not byte-identical across calls")
			}
		})
	}
}

func TestTemplateCarriesRequiredHeader(t *testing.T) {
	for _, taskType := range []domain.TaskType{
		domain.TaskTypeTranslation,
		domain.TaskTypeTTS,
		domain.TaskTypeTranscription,
	} {
		data, err := Template(taskType)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", taskType, err)
		}

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("%s: template is not valid CSV: %v", taskType, err)
		}
		if len(records) < 2 {
			t.Fatalf("%s: template needs a header and at least one sample row", taskType)
		}

		required := requiredHeader(taskType)
		found := false
		for _, h := range records[0] {
			if h == required {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: header %q missing from template", taskType, required)
		}
	}
}

func TestTemplateQuotesEmbeddedDelimiters(t *testing.T) {
	data, err := Template(domain.TaskTypeTranslation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The sample row contains a comma inside a field, so the writer must
	// quote it for the file to round-trip.
	if !strings.Contains(string(data), `"Good morning, how are you?"`) {
		t.Error("embedded comma not quoted in template output")
	}
}

func TestTemplateUnknownType(t *testing.T) {
	if _, err := Template(domain.TaskTypeASR); !errors.Is(err, ErrInvalidTaskType) {
		t.Errorf("expected ErrInvalidTaskType for asr, got %v", err)
	}
	if _, err := Template(domain.TaskType("bogus")); !errors.Is(err, ErrInvalidTaskType) {
		t.Errorf("expected ErrInvalidTaskType for bogus type, got %v", err)
	}
}
