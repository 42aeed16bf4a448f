package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a gachalog error code.
type ErrorCode string

const (
	// Discovery
	ErrLogNotFound         ErrorCode = "LOG_NOT_FOUND"          // 404
	ErrPathPatternNotFound ErrorCode = "PATH_PATTERN_NOT_FOUND" // 404
	ErrCacheDirNotFound    ErrorCode = "CACHE_DIR_NOT_FOUND"    // 404
	ErrNoValidCandidate    ErrorCode = "NO_VALID_CANDIDATE"     // 404

	// Remote API and aggregation
	ErrAPI             ErrorCode = "API_ERROR"        // 502
	ErrCursorStalled   ErrorCode = "CURSOR_STALLED"   // 502
	ErrNoDataFound     ErrorCode = "NO_DATA_FOUND"    // 404
	ErrMissingTimezone ErrorCode = "MISSING_TIMEZONE" // 422

	// Record parsing
	ErrInvalidCategoryCode ErrorCode = "INVALID_CATEGORY_CODE" // 422
	ErrInvalidUID          ErrorCode = "INVALID_UID"           // 422
	ErrInvalidRecord       ErrorCode = "INVALID_RECORD"        // 422

	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrCancelled      ErrorCode = "CANCELLED"       // 499
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// GachaError represents a structured error with code, status, and details.
type GachaError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *GachaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewLogNotFound creates a 404 error when the client log cannot be read.
func NewLogNotFound(path string, err error) *GachaError {
	msg := fmt.Sprintf("client log not found: %s", path)
	if err != nil {
		msg = fmt.Sprintf("client log not readable: %s: %v", path, err)
	}
	return &GachaError{
		Code:    ErrLogNotFound,
		Status:  404,
		Message: msg,
		Details: map[string]any{"path": path},
	}
}

// NewPathPatternNotFound creates a 404 error when the log names no install directory.
func NewPathPatternNotFound(path string) *GachaError {
	return &GachaError{
		Code:    ErrPathPatternNotFound,
		Status:  404,
		Message: fmt.Sprintf("game data path not found in %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewCacheDirNotFound creates a 404 error when webCaches has no usable subdirectory.
func NewCacheDirNotFound(dir string) *GachaError {
	return &GachaError{
		Code:    ErrCacheDirNotFound,
		Status:  404,
		Message: fmt.Sprintf("no cache directories found in %s", dir),
		Details: map[string]any{"dir": dir},
	}
}

// NewNoValidCandidate creates a 404 error when no cached URL passes the live probe.
func NewNoValidCandidate(tried int) *GachaError {
	return &GachaError{
		Code:    ErrNoValidCandidate,
		Status:  404,
		Message: fmt.Sprintf("no valid gacha log URL found (%d candidates tried)", tried),
		Details: map[string]any{"tried": tried},
	}
}

// NewCursorStalled creates a 502 error when a page does not move the
// pagination cursor forward.
func NewCursorStalled(code, endID string) *GachaError {
	msg := fmt.Sprintf("gacha_type %s: cursor did not advance past %q", code, endID)
	if endID == "" {
		msg = fmt.Sprintf("gacha_type %s: last record on page has no id", code)
	}
	return &GachaError{
		Code:    ErrCursorStalled,
		Status:  502,
		Message: msg,
		Details: map[string]any{"gacha_type": code, "end_id": endID},
	}
}

// NewAPIError creates a 502 error for a non-zero retcode from the vendor API.
func NewAPIError(retcode int, message string) *GachaError {
	return &GachaError{
		Code:    ErrAPI,
		Status:  502,
		Message: fmt.Sprintf("api returned retcode %d: %s", retcode, message),
		Details: map[string]any{"retcode": retcode, "message": message},
	}
}

// NewNoDataFound creates a 404 error when every category of a title came back empty.
func NewNoDataFound(family string) *GachaError {
	return &GachaError{
		Code:    ErrNoDataFound,
		Status:  404,
		Message: fmt.Sprintf("no data found for %s", family),
		Details: map[string]any{"family": family},
	}
}

// NewMissingTimezone creates a 422 error when the API omitted region_time_zone.
func NewMissingTimezone(family string) *GachaError {
	return &GachaError{
		Code:    ErrMissingTimezone,
		Status:  422,
		Message: fmt.Sprintf("missing timezone for %s", family),
		Details: map[string]any{"family": family},
	}
}

// NewInvalidCategoryCode creates a 422 error for an unknown gacha_type.
func NewInvalidCategoryCode(family, code string) *GachaError {
	return &GachaError{
		Code:    ErrInvalidCategoryCode,
		Status:  422,
		Message: fmt.Sprintf("invalid %s gacha_type: %q", family, code),
		Details: map[string]any{"family": family, "gacha_type": code},
	}
}

// NewInvalidUID creates a 422 error for an empty or mismatched account id.
func NewInvalidUID(uid, msg string) *GachaError {
	return &GachaError{
		Code:    ErrInvalidUID,
		Status:  422,
		Message: fmt.Sprintf("invalid uid %q: %s", uid, msg),
		Details: map[string]any{"uid": uid},
	}
}

// NewInvalidRecord creates a 422 error for a record missing a required field.
func NewInvalidRecord(id, field string) *GachaError {
	return &GachaError{
		Code:    ErrInvalidRecord,
		Status:  422,
		Message: fmt.Sprintf("record %q missing required field %s", id, field),
		Details: map[string]any{"id": id, "field": field},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *GachaError {
	return &GachaError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewFileNotFound creates a 404 error when a document file does not exist.
func NewFileNotFound(path string) *GachaError {
	return &GachaError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewCancelled creates a 499 error when an operation is interrupted.
func NewCancelled(op string) *GachaError {
	return &GachaError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", op),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *GachaError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &GachaError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err (or anything it wraps) is a GachaError with the given code.
func Is(err error, code ErrorCode) bool {
	var gErr *GachaError
	if stderrors.As(err, &gErr) {
		return gErr.Code == code
	}
	return false
}

// As returns the GachaError in err's chain, if any.
func As(err error) (*GachaError, bool) {
	var gErr *GachaError
	if stderrors.As(err, &gErr) {
		return gErr, true
	}
	return nil, false
}
