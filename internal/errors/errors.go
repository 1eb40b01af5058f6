package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeNotARepository   ErrorType = "NOT_A_REPOSITORY"
	ErrorTypeNoSuchFile       ErrorType = "NO_SUCH_FILE"
	ErrorTypeNotRegularFile   ErrorType = "NOT_REGULAR_FILE"
	ErrorTypeReadFailure      ErrorType = "READ_FAILURE"
	ErrorTypeWriteFailure     ErrorType = "WRITE_FAILURE"
	ErrorTypeUnknownTarget    ErrorType = "UNKNOWN_TARGET"
	ErrorTypeAmbiguousTarget  ErrorType = "AMBIGUOUS_TARGET"
	ErrorTypeCorruptReference ErrorType = "CORRUPT_REFERENCE"
	ErrorTypeDirtyWorkingTree ErrorType = "DIRTY_WORKING_TREE"
	ErrorTypeDuplicateBranch  ErrorType = "DUPLICATE_BRANCH"
	ErrorTypeEmptyHistory     ErrorType = "EMPTY_HISTORY"
)

type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsType reports whether err (or anything it wraps) carries the given type.
func IsType(err error, t ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

func NotARepository() *Error {
	return &Error{
		Type:    ErrorTypeNotARepository,
		Message: "not a minigit repository (run 'init' first)",
	}
}

func NoSuchFile(path string) *Error {
	return &Error{
		Type:    ErrorTypeNoSuchFile,
		Message: fmt.Sprintf("file does not exist: %s", path),
	}
}

func NotRegularFile(path string) *Error {
	return &Error{
		Type:    ErrorTypeNotRegularFile,
		Message: fmt.Sprintf("not a regular file: %s", path),
	}
}

func ReadFailure(path string, err error) *Error {
	return &Error{
		Type:    ErrorTypeReadFailure,
		Message: fmt.Sprintf("reading %s: %v", path, err),
		Err:     err,
	}
}

func WriteFailure(path string, err error) *Error {
	return &Error{
		Type:    ErrorTypeWriteFailure,
		Message: fmt.Sprintf("writing %s: %v", path, err),
		Err:     err,
	}
}

func UnknownTarget(target string) *Error {
	return &Error{
		Type:    ErrorTypeUnknownTarget,
		Message: fmt.Sprintf("branch or commit not found: %s", target),
	}
}

func AmbiguousTarget(target string) *Error {
	return &Error{
		Type:    ErrorTypeAmbiguousTarget,
		Message: fmt.Sprintf("prefix %s matches more than one commit", target),
	}
}

func CorruptReference(fingerprint string, err error) *Error {
	return &Error{
		Type:    ErrorTypeCorruptReference,
		Message: fmt.Sprintf("corrupt commit reference %s", fingerprint),
		Err:     err,
	}
}

func DirtyWorkingTree() *Error {
	return &Error{
		Type:    ErrorTypeDirtyWorkingTree,
		Message: "working directory has uncommitted changes",
	}
}

func DuplicateBranch(name string) *Error {
	return &Error{
		Type:    ErrorTypeDuplicateBranch,
		Message: fmt.Sprintf("branch '%s' already exists", name),
	}
}

func EmptyHistory() *Error {
	return &Error{
		Type:    ErrorTypeEmptyHistory,
		Message: "no commits yet",
	}
}
