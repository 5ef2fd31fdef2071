package gemini

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// encodeImageFile reads an image from disk and returns its base64 payload
// with the mime type inferred from the extension.
func encodeImageFile(path string) (data, mime string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := imageMimeTypes[ext]
	if !ok {
		mime = "image/png"
	}
	return base64.StdEncoding.EncodeToString(raw), mime, nil
}
