package importer

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
)

// imageExtensions are the archive entry types accepted for ASR tasks.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// extractImageEntries opens a ZIP archive and returns its qualifying image
// entries. macOS resource-fork paths and non-image entries are skipped.
// Entry contents are read lazily by the caller so a single corrupt entry
// cannot fail the whole archive.
func extractImageEntries(data []byte) ([]*zip.File, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableFile, err)
	}

	var entries []*zip.File
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if isMacOSMetadata(f.Name) {
			continue
		}
		if !imageExtensions[strings.ToLower(path.Ext(f.Name))] {
			continue
		}
		entries = append(entries, f)
	}

	if len(entries) == 0 {
		return nil, ErrNoImageEntries
	}
	return entries, nil
}

func isMacOSMetadata(name string) bool {
	for _, part := range strings.Split(path.Clean(name), "/") {
		if part == "__MACOSX" {
			return true
		}
	}
	return false
}

// sanitizeEntryName reduces an archive entry name to its base name with any
// character outside [A-Za-z0-9._-] replaced, keeping storage keys predictable.
func sanitizeEntryName(name string) string {
	base := path.Base(name)
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
