package base64

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURLSeparator = ";base64,"

// GetContentType extracts the MIME type from a data URL ("data:image/png;base64,...").
// It returns an empty string when the value is not a data URL.
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, dataURLSeparator)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode returns the raw bytes of a data URL payload.
func Decode(file string) ([]byte, error) {
	idx := strings.Index(file, dataURLSeparator)
	if idx == -1 {
		return nil, fmt.Errorf("value is not a base64 data URL")
	}

	payload := file[idx+len(dataURLSeparator):]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return data, nil
}
