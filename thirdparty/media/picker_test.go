package media_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/eduzap/eduzap/thirdparty/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferImageType(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "png", file: "book.png", want: "image/png"},
		{name: "upper case jpeg", file: "COVER.JPEG", want: "image/jpeg"},
		{name: "webp", file: "a.b.webp", want: "image/webp"},
		{name: "unknown extension", file: "scan.tiff2", want: media.DefaultImageType},
		{name: "no extension", file: "photo", want: media.DefaultImageType},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, media.InferImageType(tt.file))
		})
	}
}

func TestFilePicker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	p := media.NewFilePicker(path)
	ok, err := p.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	att, err := p.Pick(context.Background())
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, path, att.URI)
	assert.Equal(t, "notes.png", att.Name)
	assert.Equal(t, "image/png", att.ContentType)
}

func TestFilePicker_Cancelled(t *testing.T) {
	p := media.NewFilePicker("")
	att, err := p.Pick(context.Background())
	require.NoError(t, err)
	assert.Nil(t, att)
}

func TestFilePicker_Missing(t *testing.T) {
	p := media.NewFilePicker(filepath.Join(t.TempDir(), "gone.jpg"))
	ok, err := p.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.Pick(context.Background())
	assert.Error(t, err)
}
