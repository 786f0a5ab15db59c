package utils

import (
	"errors"
	"unicode/utf8"
)

// ErrUndecodableContent reports file content that is not valid UTF-8 text.
var ErrUndecodableContent = errors.New("content is not valid UTF-8 text")

// ValidateText returns ErrUndecodableContent when data cannot be decoded as UTF-8.
// Empty data is valid text.
func ValidateText(data []byte) error {
	if !utf8.Valid(data) {
		return ErrUndecodableContent
	}
	return nil
}
