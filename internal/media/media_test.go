package media

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid signatures, enough for content sniffing.
var (
	pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	gifBytes = []byte("GIF89a\x01\x00\x01\x00")
	jpgBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
)

// makeFileHeader builds a real multipart.FileHeader the same way a
// parsed request would.
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="media"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["media"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestStore(t *testing.T, maxBytes int64) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewStore(root, maxBytes)
	require.NoError(t, err)
	return store, root
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestSaveAcceptsValidUploads(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		wantExt     string
	}{
		{"png by content type", "pic.png", "image/png", pngBytes, ".png"},
		{"gif by content type", "anim.gif", "image/gif", gifBytes, ".gif"},
		{"jpeg by content type", "photo.jpeg", "image/jpeg", jpgBytes, ".jpg"},
		{"extension fallback", "pic.png", "", pngBytes, ".png"},
		{"jpg extension fallback", "photo.JPG", "application/octet-stream", jpgBytes, ".jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, root := newTestStore(t, 1<<20)
			fh := makeFileHeader(t, tt.filename, tt.contentType, tt.data)

			stored, err := store.Save("b", fh)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(stored, "b/"), "stored under the board dir: %s", stored)
			assert.True(t, strings.HasSuffix(stored, tt.wantExt), "stored name %s", stored)
			assert.NotContains(t, stored, tt.filename, "client filename must not leak into the stored name")

			content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored)))
			require.NoError(t, err)
			assert.Equal(t, tt.data, content)
		})
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, _ := newTestStore(t, 1<<20)

	first, err := store.Save("b", makeFileHeader(t, "a.png", "image/png", pngBytes))
	require.NoError(t, err)
	second, err := store.Save("b", makeFileHeader(t, "a.png", "image/png", pngBytes))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store, root := newTestStore(t, 1<<20)
	fh := makeFileHeader(t, "notes.txt", "text/plain", []byte("just text"))

	_, err := store.Save("b", fh)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, listFiles(t, root), "nothing may be written for rejected uploads")
}

func TestSaveRejectsContentMismatch(t *testing.T) {
	store, root := newTestStore(t, 1<<20)

	// declared as png, contains plain text
	fh := makeFileHeader(t, "fake.png", "image/png", []byte("definitely not an image, just some text bytes"))
	_, err := store.Save("b", fh)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// declared as png, contains a gif
	fh = makeFileHeader(t, "fake.png", "image/png", gifBytes)
	_, err = store.Save("b", fh)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	assert.Empty(t, listFiles(t, root))
}

func TestSaveRejectsTooLarge(t *testing.T) {
	store, root := newTestStore(t, 16)

	data := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, 100)...)
	fh := makeFileHeader(t, "big.png", "image/png", data)

	_, err := store.Save("b", fh)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, listFiles(t, root), "partial files must be cleaned up")
}

func TestCopyCappedStopsAtCeiling(t *testing.T) {
	// guards the streaming path even when the header size is wrong
	store := &Store{maxBytes: 600}

	var dst bytes.Buffer
	src := bytes.NewReader(bytes.Repeat([]byte{0xAB}, 800))
	err := store.copyCapped(&dst, pngBytes, src)
	assert.ErrorIs(t, err, ErrTooLarge)

	dst.Reset()
	src = bytes.NewReader(bytes.Repeat([]byte{0xAB}, 100))
	require.NoError(t, store.copyCapped(&dst, pngBytes, src))
	assert.Equal(t, len(pngBytes)+100, dst.Len())
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        string
		wantErr     bool
	}{
		{"content type wins", "whatever.bin", "image/webp", "webp", false},
		{"bmp content type", "x.bmp", "image/bmp", "bmp", false},
		{"mp4 content type", "clip.mp4", "video/mp4", "mp4", false},
		{"extension fallback", "clip.mp4", "", "mp4", false},
		{"uppercase extension", "PIC.PNG", "", "png", false},
		{"unknown both", "evil.exe", "application/x-dosexec", "", true},
		{"no extension", "noext", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := makeFileHeader(t, tt.filename, tt.contentType, []byte("x"))
			ext, err := extensionFor(fh)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ext)
		})
	}
}
