package output

import (
	"fmt"
	"strings"

	"github.com/temirov/ctxdump/internal/types"
)

// FormatHeader returns the label line of a displayed file, including any requested range.
func FormatHeader(relativePath string, lineRange types.LineRange) string {
	header := currentDirectoryPrefix + relativePath
	if !lineRange.IsSet() {
		return header
	}
	header += fmt.Sprintf(fromLineFormat, lineRange.EffectiveStart())
	if lineRange.End > 0 {
		header += fmt.Sprintf(toLineFormat, lineRange.End)
	}
	return header
}

// FormatContentBlock renders a shown outcome as header, fence, body and fence, each newline-terminated.
func FormatContentBlock(outcome types.DisplayOutcome) string {
	var builder strings.Builder
	builder.WriteString(FormatHeader(outcome.RelativePath, outcome.Range))
	builder.WriteString(newline)
	builder.WriteString(codeFence)
	builder.WriteString(newline)
	body := outcome.Content
	if outcome.ReadError != "" {
		body = fmt.Sprintf(readErrorFormat, outcome.RelativePath, outcome.ReadError)
	}
	builder.WriteString(body)
	if body != "" && !strings.HasSuffix(body, newline) {
		builder.WriteString(newline)
	}
	builder.WriteString(codeFence)
	builder.WriteString(newline)
	return builder.String()
}

// FormatWarning renders a rejected outcome as a single warning line.
func FormatWarning(outcome types.DisplayOutcome) string {
	return fmt.Sprintf(warningFormat, outcome.RelativePath, outcome.Reason)
}
