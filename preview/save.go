package preview

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the encodings accepted by Encode.
var Formats = []string{"png", "jpeg", "gif", "bmp", "tiff"}

// FormatFromPath guesses the encoding from the file extension, defaulting
// to png.
func FormatFromPath(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "jpg", "jpeg":
		return "jpeg"
	case "gif", "bmp", "tiff":
		return ext
	case "tif":
		return "tiff"
	default:
		return "png"
	}
}

func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// SaveFile encodes img into a temporary file next to path and renames it
// into place once the encoder succeeded.
func SaveFile(path string, img image.Image, format string) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = Encode(outFile, img, format); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}

	canRename = true
	return nil
}

// pngBuffers shares encoder scratch space between saves.
type pngBuffers struct {
	sync.Pool
}

func (p *pngBuffers) Get() *png.EncoderBuffer {
	if buf, ok := p.Pool.Get().(*png.EncoderBuffer); ok {
		return buf
	}
	return &png.EncoderBuffer{}
}

func (p *pngBuffers) Put(buf *png.EncoderBuffer) {
	p.Pool.Put(buf)
}

var pngPool png.EncoderBufferPool = &pngBuffers{}
