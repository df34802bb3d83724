package entries

import (
	"io/fs"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMime = "application/octet-stream"

// detectMime sniffs the content type using magic numbers
func detectMime(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fallbackMime
	}
	// strip parameters such as "; charset=utf-8"
	mime, _, _ := strings.Cut(mtype.String(), ";")
	return strings.TrimSpace(mime)
}

// specialMime names file types whose content is never read
func specialMime(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeNamedPipe != 0:
		return "inode/fifo"
	case mode&fs.ModeSocket != 0:
		return "inode/socket"
	case mode&fs.ModeCharDevice != 0:
		return "inode/chardevice"
	case mode&fs.ModeDevice != 0:
		return "inode/blockdevice"
	default:
		return fallbackMime
	}
}

var exactIcons = map[string]string{
	DirectoryMime:                 "folder",
	"application/pdf":             "application-pdf",
	"application/json":            "text-x-generic",
	"application/zip":             "package-x-generic",
	"application/gzip":            "package-x-generic",
	"application/x-tar":           "package-x-generic",
	"application/x-7z-compressed": "package-x-generic",
	"application/x-executable":    "application-x-executable",
	"application/x-mach-binary":   "application-x-executable",
}

var prefixIcons = []struct {
	prefix string
	icon   string
}{
	{"image/", "image-x-generic"},
	{"text/", "text-x-generic"},
	{"audio/", "audio-x-generic"},
	{"video/", "video-x-generic"},
	{"font/", "font-x-generic"},
}

// IconFor maps a content type to a freedesktop icon name
func IconFor(mime string) string {
	if icon, ok := exactIcons[mime]; ok {
		return icon
	}
	for _, p := range prefixIcons {
		if strings.HasPrefix(mime, p.prefix) {
			return p.icon
		}
	}
	return "application-x-generic"
}
