package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/ashchan-dev/ashchan/internal/domain"
)

// ErrUnsupportedType is returned when the declared type, the filename
// extension or the sniffed content is outside the allow-list.
var ErrUnsupportedType = errors.New("unsupported file type, allowed: jpg, jpeg, png, gif, webp, bmp, mp4")

// ErrTooLarge is returned when the upload exceeds the size ceiling.
var ErrTooLarge = errors.New("file too large")

// sniffLen bytes are enough for every signature in the allow-list.
const sniffLen = 512

var extByMime = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
	"video/mp4":  "mp4",
}

// mimeByExt maps each allowed extension to the content type its bytes
// must sniff as. jpg and jpeg are the same wire format.
var mimeByExt = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"mp4":  "video/mp4",
}

// Store owns the uploads directory. Files are written once under a
// generated name and never modified; board subdirectories are created
// lazily from registry-validated slugs only.
type Store struct {
	rootPath string
	maxBytes int64
}

func NewStore(rootPath string, maxBytes int64) (*Store, error) {
	p := filepath.Clean(rootPath)
	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %s: %w", p, err)
	}
	return &Store{rootPath: p, maxBytes: maxBytes}, nil
}

// Save validates and persists one uploaded file, returning its stored
// path relative to the uploads root. Callers skip Save entirely when
// the form carried no file; a nil header here is a programming error.
//
// Validation order: extension allow-list, magic-byte sniff, then the
// streaming size cap while writing. Any partially written file is
// removed on failure.
func (s *Store) Save(board domain.BoardSlug, fh *multipart.FileHeader) (string, error) {
	ext, err := extensionFor(fh)
	if err != nil {
		return "", err
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", fmt.Errorf("%w: max allowed size is %d MB", ErrTooLarge, s.maxBytes>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	head = head[:n]

	if kind := mimetype.Detect(head); !kind.Is(mimeByExt[ext]) {
		return "", fmt.Errorf("%w: content does not look like %s", ErrUnsupportedType, ext)
	}

	dir := filepath.Join(s.rootPath, board)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create board uploads directory: %w", err)
	}

	// Name is generated, never derived from client input: no
	// collisions, no traversal.
	name := fmt.Sprintf("%d-%s.%s", time.Now().Unix(), uuid.NewString(), ext)
	fullPath := filepath.Join(dir, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if err := s.copyCapped(dst, head, f); err != nil {
		dst.Close()
		os.Remove(fullPath) // best effort, partial files must not survive
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to finish writing file: %w", err)
	}

	logDimensions(fh, name)

	return filepath.ToSlash(filepath.Join(board, name)), nil
}

// copyCapped streams head plus the rest of src into dst, counting
// bytes against the ceiling.
func (s *Store) copyCapped(dst io.Writer, head []byte, src io.Reader) error {
	written := int64(len(head))
	if s.maxBytes > 0 && written > s.maxBytes {
		return fmt.Errorf("%w: max allowed size is %d MB", ErrTooLarge, s.maxBytes>>20)
	}
	if _, err := dst.Write(head); err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}
	if s.maxBytes <= 0 {
		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("failed to write file data: %w", err)
		}
		return nil
	}

	remaining := s.maxBytes - written
	copied, err := io.CopyN(dst, src, remaining+1)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to write file data: %w", err)
	}
	if copied > remaining {
		return fmt.Errorf("%w: max allowed size is %d MB", ErrTooLarge, s.maxBytes>>20)
	}
	return nil
}

// extensionFor picks the stored extension from the declared content
// type first, the client filename second.
func extensionFor(fh *multipart.FileHeader) (string, error) {
	if ext, ok := extByMime[strings.ToLower(fh.Header.Get("Content-Type"))]; ok {
		return ext, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if _, ok := mimeByExt[ext]; ok {
		return ext, nil
	}
	return "", ErrUnsupportedType
}
