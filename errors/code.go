package errors

// ErrorCode identifies a failure class across the application
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002

	ErrorCode_INPUT_MISSING        ErrorCode = 2000
	ErrorCode_INPUT_TOO_LARGE      ErrorCode = 2001
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 2002
	ErrorCode_ARTIFACT_INVALID_ID  ErrorCode = 2003
	ErrorCode_ARTIFACT_NOT_FOUND   ErrorCode = 2004
	ErrorCode_PERSISTENCE_FAILED   ErrorCode = 2005
	ErrorCode_REPORT_EXPORT_FAILED ErrorCode = 2006
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:              "OK",
	ErrorCode_INTERNAL:             "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:     "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:            "NOT_FOUND",
	ErrorCode_INPUT_MISSING:        "INPUT_MISSING",
	ErrorCode_INPUT_TOO_LARGE:      "INPUT_TOO_LARGE",
	ErrorCode_TRANSCRIPTION_FAILED: "TRANSCRIPTION_FAILED",
	ErrorCode_ARTIFACT_INVALID_ID:  "ARTIFACT_INVALID_ID",
	ErrorCode_ARTIFACT_NOT_FOUND:   "ARTIFACT_NOT_FOUND",
	ErrorCode_PERSISTENCE_FAILED:   "PERSISTENCE_FAILED",
	ErrorCode_REPORT_EXPORT_FAILED: "REPORT_EXPORT_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
