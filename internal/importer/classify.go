package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/mawuli/afrivoice/internal/domain"
)

// Upload is one operator-uploaded file with its declared media type. Files
// arrive fully in memory; the remote store owns all durable state.
type Upload struct {
	FileName  string
	MediaType string
	Data      []byte
}

// ParsedRow is one record extracted from an uploaded tabular file, prior to
// validation and mapping. Only presence of required keys matters; column
// order is irrelevant.
type ParsedRow map[string]string

// fileKind is the parser branch selected for an upload.
type fileKind int

const (
	kindTabular fileKind = iota
	kindSpreadsheet
	kindArchive
)

var tabularMediaTypes = map[string]bool{
	"text/csv":        true,
	"application/csv": true,
}

var spreadsheetMediaTypes = map[string]bool{
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// classify selects the parser branch for an upload. For the ASR task type a
// .zip file name wins over whatever media type the browser declared; tabular
// and spreadsheet uploads are matched on media type alone.
func classify(upload Upload, taskType domain.TaskType) (fileKind, error) {
	if taskType == domain.TaskTypeASR && strings.HasSuffix(strings.ToLower(upload.FileName), ".zip") {
		return kindArchive, nil
	}

	mediaType := upload.MediaType
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	switch {
	case tabularMediaTypes[mediaType]:
		return kindTabular, nil
	case spreadsheetMediaTypes[mediaType]:
		return kindSpreadsheet, nil
	}
	return 0, fmt.Errorf("%w: media type %q", ErrUnparseableFile, upload.MediaType)
}

// requiredHeader is the single column that must be present for each tabular
// task type.
func requiredHeader(t domain.TaskType) string {
	switch t {
	case domain.TaskTypeTranslation:
		return "source_text"
	case domain.TaskTypeTTS:
		return "text_to_speak"
	case domain.TaskTypeTranscription:
		return "audio_url"
	}
	return ""
}

// checkRequiredHeaders verifies the parsed header set against the required
// header for the selected task type. Matching is exact and case-sensitive.
func checkRequiredHeaders(headers []string, taskType domain.TaskType) error {
	required := requiredHeader(taskType)
	if required == "" {
		return nil
	}
	for _, h := range headers {
		if h == required {
			return nil
		}
	}
	return &MissingHeadersError{Missing: []string{required}, Found: headers}
}

// ParseRows dispatches an upload to the matching tabular parser and returns
// one ParsedRow per data row. Archive uploads are handled separately by the
// ASR import path.
func ParseRows(ctx context.Context, upload Upload, taskType domain.TaskType) ([]ParsedRow, error) {
	kind, err := classify(upload, taskType)
	if err != nil {
		return nil, err
	}
	switch kind {
	case kindTabular:
		return parseDelimited(ctx, upload.Data, taskType)
	case kindSpreadsheet:
		return parseSpreadsheet(ctx, upload.Data, taskType)
	}
	return nil, fmt.Errorf("%w: archives carry image entries, not rows", ErrUnparseableFile)
}
