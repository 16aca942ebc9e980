package domain

// TaskBatch holds the operator-selected settings shared by every task created
// in one import operation. It lives only in memory for the duration of the
// import; its values are stamped onto each created task's content.
type TaskBatch struct {
	BatchName      string
	TaskType       TaskType
	TargetLanguage string
	// SourceLanguage applies to translation batches only.
	SourceLanguage string
	Priority       TaskPriority
	// CreatedBy is the resolved identity of the importing user.
	CreatedBy string
}
