package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the pipeline's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile      = "file_path"
	FieldPair      = "currency_pair"
	FieldCurrency  = "currency"
	FieldStage     = "stage"
	FieldReason    = "reason"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldCount     = "count"
	FieldAttempt   = "attempt"
	FieldMonth     = "month"
	FieldOutputDir = "output_dir"
)
