package upload

import (
	"errors"
	"fmt"
)

// Warning maps a validation error to the title and description shown to the user.
func Warning(err error, maxBytes int64) (title, description string) {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return "File too large", fmt.Sprintf("File size must be less than %s", formatLimit(maxBytesOrDefault(maxBytes)))
	case errors.Is(err, ErrInvalidFileType), errors.Is(err, ErrNoFile):
		return "Invalid file", "Please select an image file"
	case err == nil:
		return "", ""
	default:
		return "Upload failed", err.Error()
	}
}

func formatLimit(n int64) string {
	const mib = 1024 * 1024
	if n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	if n >= mib {
		return fmt.Sprintf("%.1fMB", float64(n)/mib)
	}
	return fmt.Sprintf("%dKB", (n+1023)/1024)
}
