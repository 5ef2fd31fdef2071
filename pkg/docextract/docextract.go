// Package docextract pulls plain text out of the document formats users
// attach as source material: PDF, Word, PowerPoint, Excel and plain text.
package docextract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DocumentExtensions are the formats ExtractText accepts.
var DocumentExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".xlsx": true,
	".txt":  true,
	".md":   true,
	".csv":  true,
}

// TableExtensions are the formats ExtractTable accepts.
var TableExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
}

// ExtractText dispatches on the filename extension. Unsupported formats are
// an error rather than silently empty so the caller can tell the user.
func ExtractText(path, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDocx(path)
	case ".pptx":
		return extractPptx(path)
	case ".xlsx":
		return extractXlsx(path)
	case ".txt", ".md", ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document format: %s", filepath.Ext(filename))
	}
}

// Truncate caps extracted text, appending a marker when content was cut.
func Truncate(text string, limit int) (string, bool) {
	if len(text) <= limit {
		return text, false
	}
	cut := text[:limit]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + "\n...(content truncated)", true
}
