package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Formats accepted by Output
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatText  = "text"
)

// JSON writes data as JSON to stdout
func JSON(data any) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as indented JSON to the given writer
func JSONTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Output writes data to stdout in the specified format
func Output(format string, data any) error {
	return OutputTo(os.Stdout, format, data)
}

// OutputTo writes data in the specified format to the given writer
func OutputTo(w io.Writer, format string, data any) error {
	switch format {
	case FormatJSON:
		return JSONTo(w, data)
	case FormatTable, "":
		return TableTo(w, data)
	case FormatText:
		return TextTo(w, data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
