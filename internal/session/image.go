package session

import (
	"encoding/base64"
	"fmt"
	"os"
)

// Roughly 2MB of raw image; the backend stores the photo inline.
const maxImageBytes = 2 << 20

// ReadImageFile reads a user-selected photo and returns it base64-encoded
// for the listing payload.
func ReadImageFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
