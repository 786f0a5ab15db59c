// Package clipboard copies rendered dumps to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const copyFailedFormat = "copy output to clipboard: %w"

// ErrClipboardUnavailable is returned when no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("no clipboard utility available")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	write func(text string) error
}

// NewService constructs a Service backed by the system clipboard.
func NewService() *Service {
	return &Service{write: writeSystemClipboard}
}

// Copy writes text to the clipboard. Empty text is not copied.
func (service *Service) Copy(text string) error {
	if text == "" {
		return nil
	}
	if writeError := service.write(text); writeError != nil {
		return fmt.Errorf(copyFailedFormat, writeError)
	}
	return nil
}

func writeSystemClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

var _ Copier = (*Service)(nil)
