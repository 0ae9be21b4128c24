// Package media is the terminal stand-in for the platform image picker: the
// "library" is the local filesystem and permission means the file is readable.
package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eduzap/eduzap/model"
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
	".bmp":  "image/bmp",
}

// DefaultImageType is used when the extension is not a known image type.
const DefaultImageType = "image/jpeg"

// InferImageType maps a file name to its image content type.
func InferImageType(name string) string {
	if ct, ok := imageTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return DefaultImageType
}

// FilePicker picks a fixed path. An empty path means the user cancelled.
type FilePicker struct {
	Path string
}

func NewFilePicker(path string) *FilePicker {
	return &FilePicker{Path: path}
}

// RequestPermission reports whether the file can be read.
func (p *FilePicker) RequestPermission(ctx context.Context) (bool, error) {
	if p.Path == "" {
		return true, nil
	}
	f, err := os.Open(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return false, nil
		}
		// a missing file is a pick failure, not a permission problem
		return true, nil
	}
	f.Close()
	return true, nil
}

// Pick returns the attachment, or nil when no path was chosen.
func (p *FilePicker) Pick(ctx context.Context) (*model.ImageAttachment, error) {
	if p.Path == "" {
		return nil, nil
	}
	info, err := os.Stat(p.Path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", p.Path)
	}
	name := filepath.Base(p.Path)
	return &model.ImageAttachment{
		URI:         p.Path,
		Name:        name,
		ContentType: InferImageType(name),
	}, nil
}
