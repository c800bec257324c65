package ir

import (
	"errors"
	"fmt"
)

// LookupErrorCode categorizes failed index lookups.
type LookupErrorCode string

const (
	// ErrCodeIndexOutOfRange indicates an index outside the collection.
	ErrCodeIndexOutOfRange LookupErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeInvalidElement indicates an index that resolves to a tombstoned
	// slot or a missing key.
	ErrCodeInvalidElement LookupErrorCode = "INVALID_ELEMENT"
)

// LookupError is returned by every indexed access into a registry or rule list.
type LookupError struct {
	Code       LookupErrorCode
	Collection string // "language", "word", "surface", ... (optional)
	Index      int
	Len        int
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	what := e.Collection
	if what == "" {
		what = "element"
	}
	switch e.Code {
	case ErrCodeIndexOutOfRange:
		return fmt.Sprintf("%s: %s index %d out of range (len %d)", e.Code, what, e.Index, e.Len)
	default:
		return fmt.Sprintf("%s: %s %d is not a live element", e.Code, what, e.Index)
	}
}

// NewIndexOutOfRange builds an INDEX_OUT_OF_RANGE error.
func NewIndexOutOfRange(collection string, idx, length int) *LookupError {
	return &LookupError{Code: ErrCodeIndexOutOfRange, Collection: collection, Index: idx, Len: length}
}

// NewInvalidElement builds an INVALID_ELEMENT error.
func NewInvalidElement(collection string, idx int) *LookupError {
	return &LookupError{Code: ErrCodeInvalidElement, Collection: collection, Index: idx}
}

// IsIndexOutOfRange returns true if err is an INDEX_OUT_OF_RANGE LookupError.
// Uses errors.As to handle wrapped errors.
func IsIndexOutOfRange(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == ErrCodeIndexOutOfRange
	}
	return false
}

// IsInvalidElement returns true if err is an INVALID_ELEMENT LookupError.
// Uses errors.As to handle wrapped errors.
func IsInvalidElement(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == ErrCodeInvalidElement
	}
	return false
}

// withCollection labels a LookupError produced by a generic helper.
func withCollection(err error, collection string) error {
	var le *LookupError
	if errors.As(err, &le) && le.Collection == "" {
		le.Collection = collection
	}
	return err
}
