package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldUserAgent  = "user_agent"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldRowCount     = "row_count"
	FieldWindowedRows = "windowed_rows"
	FieldMatchedRows  = "matched_rows"
)
