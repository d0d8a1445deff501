// Package imageio serialises captured images. Pixel counts are written
// as-is, clamped to the sensor's maximum count; no scaling is applied.
package imageio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/tiff"
)

var ErrInvalidImage = errors.New("invalid image")

// Image is a row-major grey raster of pixel counts.
type Image struct {
	Pix    []uint16
	Width  int
	Height int
	// MaxVal is the largest count a pixel may hold; larger counts are
	// clamped on output.
	MaxVal uint16
}

// New wraps pix as an image. maxCount is the sensor's largest count; it is
// capped at the uint16 range.
func New(pix []uint16, width, height int, maxCount uint32) (*Image, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidImage, len(pix), width, height)
	}
	if maxCount == 0 || maxCount > 0xffff {
		maxCount = 0xffff
	}
	return &Image{Pix: pix, Width: width, Height: height, MaxVal: uint16(maxCount)}, nil
}

// At returns the clamped count of pixel x, y.
func (m *Image) At(x, y int) uint16 {
	return min(m.Pix[y*m.Width+x], m.MaxVal)
}

// Row returns the clamped counts of row y.
func (m *Image) Row(y int) []float64 {
	row := make([]float64, m.Width)
	for x := range row {
		row[x] = float64(m.At(x, y))
	}
	return row
}

// Gray16 converts the image to an image.Gray16.
func (m *Image) Gray16() *image.Gray16 {
	g := image.NewGray16(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := m.At(x, y)
			i := g.PixOffset(x, y)
			g.Pix[i] = uint8(v >> 8)
			g.Pix[i+1] = uint8(v)
		}
	}
	return g
}

// WritePGM writes the image as an ASCII (P2) portable grey map, one image
// row per line.
func (m *Image) WritePGM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P2\n%d %d\n%d\n", m.Width, m.Height, m.MaxVal)
	buf := make([]byte, 0, 8)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendUint(buf[:0], uint64(m.At(x, y)), 10)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WritePNG writes the image as a 16-bit greyscale PNG.
func (m *Image) WritePNG(w io.Writer) error {
	return png.Encode(w, m.Gray16())
}

// WriteTIFF writes the image as a deflate-compressed 16-bit greyscale TIFF.
func (m *Image) WriteTIFF(w io.Writer) error {
	return tiff.Encode(w, m.Gray16(), &tiff.Options{Compression: tiff.Deflate})
}

// WriteCSV writes one record per image row.
func (m *Image) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	record := make([]string, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := range record {
			record[x] = strconv.FormatUint(uint64(m.At(x, y)), 10)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPGM reads an ASCII (P2) portable grey map.
func ReadPGM(r io.Reader) (*Image, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(tokens) < 4 {
		return nil, fmt.Errorf("%w: short header", ErrInvalidImage)
	}
	if tokens[0] != "P2" {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidImage, tokens[0])
	}

	values := make([]int, len(tokens)-1)
	for i, tok := range tokens[1:] {
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: bad value %q", ErrInvalidImage, tok)
		}
		values[i] = v
	}
	width, height, maxVal := values[0], values[1], values[2]
	if maxVal == 0 || maxVal > 0xffff {
		return nil, fmt.Errorf("%w: maxval %d", ErrInvalidImage, maxVal)
	}
	if len(values)-3 != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidImage, len(values)-3, width, height)
	}

	pix := make([]uint16, width*height)
	for i, v := range values[3:] {
		if v > maxVal {
			return nil, fmt.Errorf("%w: pixel %d exceeds maxval", ErrInvalidImage, i)
		}
		pix[i] = uint16(v)
	}
	return New(pix, width, height, uint32(maxVal))
}

// SaveFile writes the image to path with write, e.g. (*Image).WritePGM.
func SaveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write image: %w", err)
	}
	return f.Close()
}
