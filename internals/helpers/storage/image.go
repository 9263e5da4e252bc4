package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	helper "cftl_backend/internals/helpers"
)

const MaxImageUploadSize = int64(5 * 1024 * 1024)

// ImageOptions controls recompression of uploaded pictures.
type ImageOptions struct {
	Width   int
	Quality float32
}

var DefaultImageOptions = ImageOptions{Width: 512, Quality: 75}

var ErrUnsupportedImage = fmt.Errorf("unsupported image format (use jpg, png or webp)")

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	if !strings.HasPrefix(ct, "image/") {
		// DetectContentType does not know every webp variant
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			ct = "image/jpeg"
		case ".png":
			ct = "image/png"
		case ".webp":
			ct = "image/webp"
		}
	}

	r := bytes.NewReader(all)
	switch ct {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	default:
		return nil, ErrUnsupportedImage
	}
}

// CompressImage resizes to opt.Width keeping the aspect ratio and re-encodes as webp.
func CompressImage(data []byte, filename string, opt ImageOptions) ([]byte, error) {
	img, err := decodeImage(data, filename)
	if err != nil {
		return nil, err
	}
	if opt.Width > 0 {
		img = imaging.Resize(img, opt.Width, 0, imaging.Lanczos)
	}
	q := opt.Quality
	if q <= 0 {
		q = DefaultImageOptions.Quality
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadImage recompresses a multipart image and stores it under folder/.
// Returns the public URL of the stored object.
func UploadImage(ctx context.Context, store ObjectStorage, fh *multipart.FileHeader, folder string) (string, error) {
	if store == nil {
		return "", ErrNotConfigured
	}
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxImageUploadSize {
		return "", fmt.Errorf("file too large (max %d bytes)", MaxImageUploadSize)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	out, err := CompressImage(all, fh.Filename, DefaultImageOptions)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := helper.GenerateUniqueFilename(folder, base+".webp")
	if err := store.PutObject(ctx, key, bytes.NewReader(out), "image/webp"); err != nil {
		return "", err
	}
	return store.PublicURL(key), nil
}
