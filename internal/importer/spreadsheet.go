package importer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/logger"
	"github.com/xuri/excelize/v2"
)

// ole2Magic is the compound-file signature that opens every legacy binary
// workbook. Modern workbooks are zip containers and lack it.
var ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// parseSpreadsheet reads the first sheet of a workbook, treating row 1 as
// headers and mapping every subsequent row positionally into a ParsedRow.
// Legacy binary workbooks are detected by signature and handed to their own
// reader; the declared media type does not distinguish the two reliably.
func parseSpreadsheet(ctx context.Context, data []byte, taskType domain.TaskType) ([]ParsedRow, error) {
	if bytes.HasPrefix(data, ole2Magic) {
		return parseLegacyWorkbook(ctx, data, taskType)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableFile, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.FromContext(ctx).WithError(cerr).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnparseableFile)
	}

	// First sheet only; remaining sheets are ignored.
	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableFile, err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no rows", ErrUnparseableFile, sheets[0])
	}

	headers := allRows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	if err := checkRequiredHeaders(headers, taskType); err != nil {
		return nil, err
	}

	rows := make([]ParsedRow, 0, len(allRows)-1)
	for _, record := range allRows[1:] {
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

// parseLegacyWorkbook reads the first sheet of a pre-2007 binary workbook,
// applying the same header and row rules as the modern branch.
func parseLegacyWorkbook(ctx context.Context, data []byte, taskType domain.TaskType) ([]ParsedRow, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableFile, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnparseableFile)
	}

	headerRow := sheet.Row(0)
	if headerRow == nil {
		return nil, fmt.Errorf("%w: sheet %q has no rows", ErrUnparseableFile, sheet.Name)
	}
	headers := make([]string, headerRow.LastCol())
	for i := range headers {
		headers[i] = strings.TrimSpace(headerRow.Col(i))
	}
	if err := checkRequiredHeaders(headers, taskType); err != nil {
		return nil, err
	}

	rows := make([]ParsedRow, 0, int(sheet.MaxRow))
	for i := 1; i <= int(sheet.MaxRow); i++ {
		record := sheet.Row(i)
		if record == nil {
			continue
		}
		row := make(ParsedRow, len(headers))
		for j, h := range headers {
			if j < record.LastCol() {
				row[h] = strings.TrimSpace(record.Col(j))
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
