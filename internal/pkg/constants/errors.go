package constants

import "net/http"

// CodedError несет HTTP-код, который error handler отдает клиенту.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrBadRequest       = NewCodedError("bad request", http.StatusBadRequest)
	ErrInvalidSelection = NewCodedError("invalid facet selection", http.StatusBadRequest)
	ErrDBNotFound       = NewCodedError("not found", http.StatusNotFound)
	ErrUnknownChart     = NewCodedError("unknown chart", http.StatusNotFound)
)
