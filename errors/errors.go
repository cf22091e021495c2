package errors

import (
	"fmt"
	"net/http"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

// Pipeline input errors
func ErrMissingUpload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INPUT_MISSING,
		Message:  "No audio file in request",
	}
}

func ErrEmptyUpload(filename string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INPUT_MISSING,
		Message:  "Uploaded audio file is empty",
	}.WithDetail("filename", filename)
}

func ErrUploadTooLarge(limitBytes int64) AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_INPUT_TOO_LARGE,
		Message:  fmt.Sprintf("File is too large. Limit is %d MB", limitBytes/(1024*1024)),
	}
}

// Transcription errors
func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

// Artifact store errors
func ErrInvalidArtifactID(id string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_ARTIFACT_INVALID_ID,
		Message:  "Malformed meeting id",
	}.WithDetail("meeting_id", id)
}

func ErrArtifactNotFound(id string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ARTIFACT_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", id)
}

func ErrPersistenceFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PERSISTENCE_FAILED,
		Message:  "Failed to persist meeting artifact",
	}
}

// Report errors
func ErrReportExportFailed(format string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_REPORT_EXPORT_FAILED,
		Message:  "Failed to export report",
	}.WithDetail("format", format)
}
