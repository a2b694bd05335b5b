package constants

import (
	"path/filepath"
	"strings"
)

// Document formats the extraction pipeline understands.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// AllowedExtensions holds the file extensions accepted by the /extract endpoint.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ExtFromFilename returns the normalized extension of a filename.
func ExtFromFilename(name string) string {
	return NormalizeExt(filepath.Ext(name))
}

// MapExtToFormat maps a normalized extension to a document format.
// Unknown extensions map to the empty string.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "tif", "tiff":
		return IMAGE
	default:
		return ""
	}
}
