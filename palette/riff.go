package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

// RIFFReaderWriter is implemented by palettes that can be loaded from and
// saved to RIFF PAL streams.
type RIFFReaderWriter interface {
	ReadRIFF(io.Reader) (int64, error)
	WriteRIFF(io.Writer) (int64, error)
}

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const (
	palVersion = 0x0300
	maxEntries = 0xffff
)

var ErrTooManyColors = errors.New("palette holds more than 65535 colors")

// Read decodes every palette of a RIFF PAL stream. Palettes nested in PAL
// lists are flattened in stream order.
func Read(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", string(formType[:]))
	}

	return readChunks(rd, "PAL")
}

func readChunks(r *riff.Reader, ident string) ([]color.Palette, error) {
	var res []color.Palette

	for {
		id, size, data, err := r.Next()
		if err == io.EOF {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk %s#%d: %w", ident, len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list in %s#%d: %w", ident, len(res), err)
			} else if listType != palType {
				return res, fmt.Errorf("list in %s#%d has unsupported type %q", ident, len(res), string(listType[:]))
			}

			nested, err := readChunks(list, fmt.Sprintf("%s#%d", ident, len(res)))
			res = append(res, nested...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s#%d", ident, len(res)))
			if err != nil {
				return res, err
			}
			res = append(res, pal)
		default:
			return res, fmt.Errorf("unsupported chunk type in %s#%d: %q", ident, len(res), string(id[:]))
		}
	}
}

func readPalette(r io.Reader, ident string) (color.Palette, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("could not read header of chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(header[0:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(header[2:4]))
	entries := make([]byte, 4*count)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("could not read %d colors from chunk %s: %w", count, ident, err)
	}

	pal := make(color.Palette, count)
	for i := range count {
		e := entries[4*i : 4*i+4]
		pal[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}
	return pal, nil
}

// Write encodes pals as one RIFF PAL stream with a data chunk per palette
// and returns the number of bytes written.
func Write(w io.Writer, pals []color.Palette) (int64, error) {
	formSize := len(palType)
	for i, pal := range pals {
		if len(pal) > maxEntries {
			return 0, fmt.Errorf("palette %d: %w", i, ErrTooManyColors)
		}
		formSize += 8 + 4 + 4*len(pal) // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	buf := make([]byte, 0, 8+formSize)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(formSize))
	buf = append(buf, palType[:]...)

	for _, pal := range pals {
		buf = append(buf, dataType[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(4+4*len(pal)))
		buf = binary.LittleEndian.AppendUint16(buf, palVersion)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(pal)))
		for _, col := range pal {
			c := color.RGBAModel.Convert(col).(color.RGBA)
			buf = append(buf, c.R, c.G, c.B, 0x00)
		}
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("could not write palette stream: %w", err)
	} else if n != len(buf) {
		return int64(n), fmt.Errorf("wrote only %d/%d bytes", n, len(buf))
	}
	return int64(n), nil
}
