package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/mawuli/afrivoice/internal/domain"
)

// templateRows holds the header and fixed sample rows for each tabular task
// type. The rows are constants, so generated templates are byte-identical
// across calls.
var templateRows = map[domain.TaskType][][]string{
	domain.TaskTypeTranslation: {
		{"source_text", "source_language", "target_language", "domain", "task_title", "task_description"},
		{"Good morning, how are you?", "English", "Akan", "general", "", ""},
		{"The clinic opens at eight o'clock.", "English", "Ewe", "health", "Clinic hours", "Translate the sentence for a health campaign"},
	},
	domain.TaskTypeTTS: {
		{"text_to_speak", "task_title", "task_description"},
		{"Akwaaba! You are welcome to our community.", "", ""},
		{"Please wash your hands before eating.", "Handwashing prompt", "Read the sentence aloud clearly"},
	},
	domain.TaskTypeTranscription: {
		{"audio_url", "task_title", "task_description"},
		{"https://example.com/audio/greeting-001.mp3", "", ""},
		{"https://example.com/audio/market-002.mp3", "Market recording", "Transcribe every spoken word"},
	},
}

// Template generates the downloadable CSV template for a task type. ASR
// batches are imported from ZIP archives and have no tabular template.
func Template(t domain.TaskType) ([]byte, error) {
	rows, ok := templateRows[t]
	if !ok {
		return nil, fmt.Errorf("%w: no template for task type %q", ErrInvalidTaskType, t)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
