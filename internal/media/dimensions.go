package media

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ashchan-dev/ashchan/internal/logger"
)

// logDimensions records image dimensions for accepted uploads. A file
// that passed the signature check but fails to decode fully is not an
// error here.
func logDimensions(fh *multipart.FileHeader, storedName string) {
	f, err := fh.Open()
	if err != nil {
		return
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return
	}
	logger.Log.Debug("stored media file",
		"name", storedName, "format", format,
		"width", cfg.Width, "height", cfg.Height, "bytes", fh.Size)
}
