package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldJobID is the bulk import job ID
	FieldJobID = "job_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldUserID is the authenticated user ID
	FieldUserID = "user_id"

	// FieldBatch is the operator-supplied batch name
	FieldBatch = "batch"

	// FieldTaskType is the task type of the current import
	FieldTaskType = "task_type"
)

// Metric fields, attached at individual log call sites.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldChunk is the 1-based chunk index of a batched insert
	FieldChunk = "chunk"

	// FieldEntry is the archive entry name being processed
	FieldEntry = "entry"

	// FieldRow is the 1-based data row index of a parsed file
	FieldRow = "row"

	// FieldStatus is the operation or HTTP status
	FieldStatus = "status"
)
