package serverutils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures the way the workflow treats them:
// usage errors reject the step outright, retrieval errors abort a
// search, enrichment errors degrade one candidate's display, logger
// errors leave the session waiting in its current state.
type ErrorKind string

const (
	KindUsage      ErrorKind = "USAGE"
	KindRetrieval  ErrorKind = "RETRIEVAL"
	KindEnrichment ErrorKind = "ENRICHMENT"
	KindLogger     ErrorKind = "LOGGER"
	KindBusy       ErrorKind = "BUSY"
	KindNotFound   ErrorKind = "NOT_FOUND"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewUsageError(message string) *AppError {
	return &AppError{Kind: KindUsage, Message: message}
}

func NewRetrievalError(err error) *AppError {
	return &AppError{Kind: KindRetrieval, Message: "search unavailable", Err: err}
}

func NewEnrichmentError(err error) *AppError {
	return &AppError{Kind: KindEnrichment, Message: "book info unavailable", Err: err}
}

func NewLoggerError(err error) *AppError {
	return &AppError{Kind: KindLogger, Message: "failed to save feedback to the shared log", Err: err}
}

func NewBusyError() *AppError {
	return &AppError{Kind: KindBusy, Message: "a previous step is still in progress"}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
