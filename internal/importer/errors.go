package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnparseableFile is returned when no parser branch matches the
	// uploaded file's media type.
	ErrUnparseableFile = errors.New("unparseable file")

	// ErrNoValidTasks is returned when every parsed row was excluded and
	// nothing is left to insert.
	ErrNoValidTasks = errors.New("no valid tasks could be created")

	// ErrNoImageEntries is returned when an archive contains no qualifying
	// image files.
	ErrNoImageEntries = errors.New("no valid image files found")

	// ErrSameLanguage rejects a translation batch whose source and target
	// language are identical.
	ErrSameLanguage = errors.New("source and target language must differ")

	// ErrNoIdentity is returned when the import has no resolved user to
	// attribute created tasks to.
	ErrNoIdentity = errors.New("no authenticated identity")

	// ErrInvalidTaskType is returned for an unknown task type selector.
	ErrInvalidTaskType = errors.New("invalid task type")
)

// MissingHeadersError reports required headers absent from a parsed file,
// alongside the headers that were actually found.
type MissingHeadersError struct {
	Missing []string
	Found   []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("missing required headers: %s (found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// ChunkError reports the first failing chunk of a batched insert. Chunks
// committed before it remain committed.
type ChunkError struct {
	Chunk int // 1-based chunk index
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("insert failed at chunk %d: %v", e.Chunk, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
