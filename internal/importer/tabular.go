package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/logger"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiterCandidates in precedence order for tie-breaking.
var delimiterCandidates = []rune{',', '\t', ';', '|'}

// parseDelimited parses a delimited-text upload with a header row. The
// delimiter is auto-detected among comma, tab, semicolon and pipe. Field
// count mismatches and an undetectable delimiter are non-critical: they are
// logged and do not abort. Any other parser error aborts with the first
// message.
func parseDelimited(ctx context.Context, data []byte, taskType domain.TaskType) ([]ParsedRow, error) {
	log := logger.FromContext(ctx)

	data = bytes.TrimPrefix(data, utf8BOM)

	delim, detected := detectDelimiter(firstLine(data))
	if !detected {
		log.WithField("default", string(delim)).Warn("Delimiter not detected, defaulting to comma")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1 // field count checked manually, logged only
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", ErrUnparseableFile)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	if err := checkRequiredHeaders(headers, taskType); err != nil {
		return nil, err
	}

	var rows []ParsedRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse error: %w", err)
		}
		line++

		if len(record) != len(headers) {
			log.WithFields(logger.Fields{
				logger.FieldRow: line,
				"fields":        len(record),
				"headers":       len(headers),
			}).Warn("Field count mismatch")
		}

		row := make(ParsedRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// firstLine returns the bytes of the first line, excluding the newline.
func firstLine(data []byte) []byte {
	if idx := bytes.IndexByte(data, '\n'); idx != -1 {
		return bytes.TrimSuffix(data[:idx], []byte{'\r'})
	}
	return data
}

// detectDelimiter counts candidate delimiters outside quoted sections of the
// header line and picks the most frequent one. Returns comma and false when
// nothing matched.
func detectDelimiter(line []byte) (rune, bool) {
	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, r := range string(line) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		for _, c := range delimiterCandidates {
			if r == c {
				counts[r]++
				break
			}
		}
	}

	best := rune(',')
	bestCount := 0
	for _, c := range delimiterCandidates {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	if bestCount == 0 {
		return ',', false
	}
	return best, true
}
