package importer

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows to the named sheets in order and returns the
// serialized xlsx bytes. The first name becomes the workbook's first sheet.
func buildWorkbook(t *testing.T, sheets map[string][][]string, order []string) []byte {
	t.Helper()

	f := excelize.NewFile()
	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("create sheet %q: %v", name, err)
			}
		}
		for rowIdx, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseSpreadsheet(t *testing.T) {
	ctx := context.Background()

	data := buildWorkbook(t, map[string][][]string{
		"Tasks": {
			{"source_text", "task_title"},
			{"Hello", "Greeting"},
			{"Goodbye"},
		},
	}, []string{"Tasks"})

	rows, err := parseSpreadsheet(ctx, data, domain.TaskTypeTranslation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["source_text"] != "Hello" || rows[0]["task_title"] != "Greeting" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	// Short rows leave trailing columns absent rather than erroring.
	if rows[1]["source_text"] != "Goodbye" {
		t.Errorf("unexpected second row: %v", rows[1])
	}
	if _, ok := rows[1]["task_title"]; ok {
		t.Error("short row should not carry a value for the missing column")
	}
}

func TestParseSpreadsheetFirstSheetOnly(t *testing.T) {
	data := buildWorkbook(t, map[string][][]string{
		"First": {
			{"text_to_speak"},
			{"Akwaaba"},
		},
		"Second": {
			{"text_to_speak"},
			{"ignored"},
			{"also ignored"},
		},
	}, []string{"First", "Second"})

	rows, err := parseSpreadsheet(context.Background(), data, domain.TaskTypeTTS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected rows from the first sheet only, got %d", len(rows))
	}
	if rows[0]["text_to_speak"] != "Akwaaba" {
		t.Errorf("unexpected row: %v", rows[0])
	}
}

func TestParseSpreadsheetMissingHeader(t *testing.T) {
	data := buildWorkbook(t, map[string][][]string{
		"Sheet": {
			{"url", "task_title"},
			{"https://example.com/a.mp3", "Clip"},
		},
	}, []string{"Sheet"})

	_, err := parseSpreadsheet(context.Background(), data, domain.TaskTypeTranscription)
	var missing *MissingHeadersError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingHeadersError, got %v", err)
	}
	if len(missing.Missing) != 1 || missing.Missing[0] != "audio_url" {
		t.Errorf("expected missing audio_url, got %v", missing.Missing)
	}
}

func TestParseSpreadsheetEmptySheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]string{
		"Empty": {},
	}, []string{"Empty"})

	_, err := parseSpreadsheet(context.Background(), data, domain.TaskTypeTranslation)
	if !errors.Is(err, ErrUnparseableFile) {
		t.Errorf("expected ErrUnparseableFile for empty sheet, got %v", err)
	}
}

func TestParseSpreadsheetGarbage(t *testing.T) {
	_, err := parseSpreadsheet(context.Background(), []byte("not a workbook"), domain.TaskTypeTranslation)
	if !errors.Is(err, ErrUnparseableFile) {
		t.Errorf("expected ErrUnparseableFile, got %v", err)
	}
}

// buildLegacyWorkbook serializes rows into a minimal pre-2007 binary
// workbook: one sheet of shared-string cells inside a compound file. A
// filler record keeps the workbook stream above the compound file's
// mini-stream cutoff so the whole stream lives in regular sectors.
func buildLegacyWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	var strs []string
	sstIndex := make(map[string]int)
	cellCount := 0
	for _, row := range rows {
		for _, cell := range row {
			cellCount++
			if _, ok := sstIndex[cell]; !ok {
				sstIndex[cell] = len(strs)
				strs = append(strs, cell)
			}
		}
	}

	stream := new(bytes.Buffer)
	record := func(typ uint16, payload []byte) {
		binary.Write(stream, binary.LittleEndian, typ)
		binary.Write(stream, binary.LittleEndian, uint16(len(payload)))
		stream.Write(payload)
	}
	bof := func(substream uint16) []byte {
		p := make([]byte, 16)
		binary.LittleEndian.PutUint16(p[0:], 0x0600)
		binary.LittleEndian.PutUint16(p[2:], substream)
		binary.LittleEndian.PutUint16(p[4:], 0x0DBB)
		binary.LittleEndian.PutUint16(p[6:], 0x07CC)
		return p
	}

	// Workbook globals.
	record(0x0809, bof(0x0005))
	codepage := make([]byte, 2)
	binary.LittleEndian.PutUint16(codepage, 0x04B0)
	record(0x0042, codepage)

	font := []byte{
		0xC8, 0x00, 0x00, 0x00, 0xFF, 0x7F, 0x90, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05, 0x00,
	}
	font = append(font, "Arial"...)
	record(0x0031, font)

	// 15 style formats plus the default cell format the cells reference.
	for i := 0; i < 16; i++ {
		xf := make([]byte, 20)
		xf[4] = 0x01
		if i < 15 {
			xf[4] |= 0x04
		}
		record(0x00E0, xf)
	}

	record(0x0897, make([]byte, 4096)) // filler, skipped by readers

	plyPosAt := stream.Len() + 4
	boundsheet := []byte{0, 0, 0, 0, 0, 0, 6, 0}
	boundsheet = append(boundsheet, "Sheet1"...)
	record(0x0085, boundsheet)

	sst := new(bytes.Buffer)
	binary.Write(sst, binary.LittleEndian, uint32(cellCount))
	binary.Write(sst, binary.LittleEndian, uint32(len(strs)))
	for _, s := range strs {
		binary.Write(sst, binary.LittleEndian, uint16(len(s)))
		sst.WriteByte(0) // compressed string
		sst.WriteString(s)
	}
	record(0x00FC, sst.Bytes())
	record(0x000A, nil)

	// Worksheet substream.
	sheetStart := stream.Len()
	record(0x0809, bof(0x0010))
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	dims := make([]byte, 14)
	binary.LittleEndian.PutUint32(dims[4:], uint32(len(rows)))
	binary.LittleEndian.PutUint16(dims[10:], uint16(maxCols))
	record(0x0200, dims)
	for ri, row := range rows {
		for ci, cell := range row {
			p := make([]byte, 10)
			binary.LittleEndian.PutUint16(p[0:], uint16(ri))
			binary.LittleEndian.PutUint16(p[2:], uint16(ci))
			binary.LittleEndian.PutUint16(p[4:], 15)
			binary.LittleEndian.PutUint32(p[6:], uint32(sstIndex[cell]))
			record(0x00FD, p)
		}
	}
	record(0x000A, nil)

	biff := stream.Bytes()
	binary.LittleEndian.PutUint32(biff[plyPosAt:], uint32(sheetStart))

	return wrapCompoundFile(biff)
}

// wrapCompoundFile stores one "Workbook" stream in a minimal compound file:
// header, one FAT sector, one directory sector, then the stream sectors.
func wrapCompoundFile(stream []byte) []byte {
	const sectorSize = 512
	const (
		freeSect = 0xFFFFFFFF
		endChain = 0xFFFFFFFE
		fatSect  = 0xFFFFFFFD
	)
	nStream := (len(stream) + sectorSize - 1) / sectorSize

	header := make([]byte, sectorSize)
	copy(header, ole2Magic)
	binary.LittleEndian.PutUint16(header[24:], 0x003E)
	binary.LittleEndian.PutUint16(header[26:], 0x0003)
	binary.LittleEndian.PutUint16(header[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(header[30:], 9) // 512-byte sectors
	binary.LittleEndian.PutUint16(header[32:], 6)
	binary.LittleEndian.PutUint32(header[44:], 1) // one FAT sector
	binary.LittleEndian.PutUint32(header[48:], 1) // directory at sector 1
	binary.LittleEndian.PutUint32(header[56:], 0x1000)
	binary.LittleEndian.PutUint32(header[60:], endChain) // no mini FAT
	binary.LittleEndian.PutUint32(header[68:], endChain) // no extra DIFAT
	for i := 76; i < sectorSize; i += 4 {
		binary.LittleEndian.PutUint32(header[i:], freeSect)
	}
	binary.LittleEndian.PutUint32(header[76:], 0) // FAT at sector 0

	fat := make([]byte, sectorSize)
	for i := 0; i < sectorSize; i += 4 {
		binary.LittleEndian.PutUint32(fat[i:], freeSect)
	}
	binary.LittleEndian.PutUint32(fat[0:], fatSect)
	binary.LittleEndian.PutUint32(fat[4:], endChain) // directory chain
	for i := 0; i < nStream; i++ {
		next := uint32(endChain)
		if i < nStream-1 {
			next = uint32(3 + i)
		}
		binary.LittleEndian.PutUint32(fat[(2+i)*4:], next)
	}

	dir := make([]byte, sectorSize)
	dirEntry := func(b []byte, name string, objType byte, child, start, size uint32) {
		for i, r := range name {
			binary.LittleEndian.PutUint16(b[i*2:], uint16(r))
		}
		binary.LittleEndian.PutUint16(b[64:], uint16((len(name)+1)*2))
		b[66] = objType
		b[67] = 1 // black
		binary.LittleEndian.PutUint32(b[68:], freeSect)
		binary.LittleEndian.PutUint32(b[72:], freeSect)
		binary.LittleEndian.PutUint32(b[76:], child)
		binary.LittleEndian.PutUint32(b[116:], start)
		binary.LittleEndian.PutUint32(b[120:], size)
	}
	dirEntry(dir[0:], "Root Entry", 5, 1, endChain, 0)
	dirEntry(dir[128:], "Workbook", 2, freeSect, 2, uint32(len(stream)))
	for _, off := range []int{256, 384} { // unused entries
		binary.LittleEndian.PutUint32(dir[off+68:], freeSect)
		binary.LittleEndian.PutUint32(dir[off+72:], freeSect)
		binary.LittleEndian.PutUint32(dir[off+76:], freeSect)
	}

	out := append([]byte{}, header...)
	out = append(out, fat...)
	out = append(out, dir...)
	out = append(out, stream...)
	if rem := len(stream) % sectorSize; rem != 0 {
		out = append(out, make([]byte, sectorSize-rem)...)
	}
	return out
}

func TestParseLegacyWorkbook(t *testing.T) {
	data := buildLegacyWorkbook(t, [][]string{
		{"source_text", "task_title"},
		{"Hello", "Greeting"},
		{"Goodbye"},
	})

	// Through the dispatcher, so the signature sniff is covered too.
	rows, err := parseSpreadsheet(context.Background(), data, domain.TaskTypeTranslation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["source_text"] != "Hello" || rows[0]["task_title"] != "Greeting" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1]["source_text"] != "Goodbye" {
		t.Errorf("unexpected second row: %v", rows[1])
	}
	if v, ok := rows[1]["task_title"]; ok && v != "" {
		t.Errorf("short row should not carry a value for the missing column, got %q", v)
	}
}

func TestParseLegacyWorkbookMissingHeader(t *testing.T) {
	data := buildLegacyWorkbook(t, [][]string{
		{"url", "task_title"},
		{"https://example.com/a.mp3", "Clip"},
	})

	_, err := parseSpreadsheet(context.Background(), data, domain.TaskTypeTranscription)
	var missing *MissingHeadersError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingHeadersError, got %v", err)
	}
	if len(missing.Missing) != 1 || missing.Missing[0] != "audio_url" {
		t.Errorf("expected missing audio_url, got %v", missing.Missing)
	}
}

func TestParseLegacyWorkbookTruncated(t *testing.T) {
	// The compound-file signature routes to the legacy reader, which must
	// reject a truncated body rather than falling through to the zip reader.
	data := append(append([]byte{}, ole2Magic...), make([]byte, 64)...)
	_, err := parseSpreadsheet(context.Background(), data, domain.TaskTypeTranslation)
	if !errors.Is(err, ErrUnparseableFile) {
		t.Errorf("expected ErrUnparseableFile, got %v", err)
	}
}
