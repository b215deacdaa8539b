package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"bfi-dashboard/utils"
)

// ihdrEnd is the offset just past the PNG signature and the IHDR chunk.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// PNGWriter writes images as PNG files under a fixed directory, tagging each
// with a physical resolution.
type PNGWriter struct {
	dir    string
	dpi    int
	logger *utils.Logger
}

// NewPNGWriter creates dir if needed.
func NewPNGWriter(dir string, dpi int, logger *utils.Logger) (*PNGWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("png: create output dir: %w", err)
	}
	return &PNGWriter{dir: dir, dpi: dpi, logger: logger}, nil
}

// WriteImage encodes img to dir/filename, replacing any existing file.
func (w *PNGWriter) WriteImage(filename string, img image.Image) (string, error) {
	path := filepath.Join(w.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("png: create %q: %w", path, err)
	}
	if err := EncodePNG(f, img, w.dpi); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("png: write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("png: close %q: %w", path, err)
	}

	b := img.Bounds()
	w.logger.Info("[storage] Saved %s (%dx%d @ %d dpi)", path, b.Dx(), b.Dy(), w.dpi)
	return path, nil
}

// EncodePNG writes img as PNG with a pHYs chunk declaring dpi. A dpi of zero
// or less omits the chunk.
func EncodePNG(out io.Writer, img image.Image, dpi int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	data := buf.Bytes()
	if dpi <= 0 {
		_, err := out.Write(data)
		return err
	}
	if len(data) < ihdrEnd {
		return fmt.Errorf("encoded png is truncated (%d bytes)", len(data))
	}

	if _, err := out.Write(data[:ihdrEnd]); err != nil {
		return err
	}
	if _, err := out.Write(physChunk(dpi)); err != nil {
		return err
	}
	_, err := out.Write(data[ihdrEnd:])
	return err
}

func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	body := make([]byte, 4+9)
	copy(body, "pHYs")
	binary.BigEndian.PutUint32(body[4:], ppm)
	binary.BigEndian.PutUint32(body[8:], ppm)
	body[12] = 1 // unit: metre

	chunk := make([]byte, 4, 4+len(body)+4)
	binary.BigEndian.PutUint32(chunk, 9)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(body))
	return chunk
}

// ReadDPI returns the resolution declared by a PNG's pHYs chunk, or zero
// when the file has none.
func ReadDPI(r io.Reader) (int, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return 0, err
	}
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF {
				return 0, nil
			}
			return 0, err
		}
		n := binary.BigEndian.Uint32(hdr[:4])
		typ := string(hdr[4:])

		body := make([]byte, int(n)+4)
		if _, err := io.ReadFull(r, body); err != nil {
			return 0, err
		}
		switch typ {
		case "pHYs":
			if n != 9 || body[8] != 1 {
				return 0, nil
			}
			ppm := binary.BigEndian.Uint32(body[:4])
			return int(math.Round(float64(ppm) * 0.0254)), nil
		case "IDAT", "IEND":
			return 0, nil
		}
	}
}
