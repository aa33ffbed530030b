package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/share-projector/internal/domain"
)

// ErrUnsupportedFormat is returned when a format name resolves to no formatter.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ResolveFormatter looks up a formatter and enriches the miss with the
// available names and aliases.
func ResolveFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport writes the report in the given format to a timestamped file in dir
// and returns the file path.
func GenerateReport(report *domain.ProjectionReport, format, dir string) (string, error) {
	f, err := ResolveFormatter(format)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return WriteFormatted(f, report, dir)
}

// Render writes the formatted report to w.
func Render(w io.Writer, report *domain.ProjectionReport, format string) error {
	f, err := ResolveFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
