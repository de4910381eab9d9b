package logging

// Field names used across the application so that log output can be
// filtered consistently.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldCategory   = "category"
	FieldPeriod     = "period"
	FieldMonth      = "month"
	FieldYear       = "year"
	FieldStep       = "step"
	FieldStart      = "start"
	FieldEnd        = "end"
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldReason     = "reason"
	FieldDuration   = "duration_ms"
	FieldDelimiter  = "delimiter"
	FieldReportFile = "report_file"
	FieldURL        = "url"
)
