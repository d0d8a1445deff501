package format

import "fmt"

type Format int8

const (
	HTML Format = iota
	Png
	Csv
	Pgm
	Tiff
)

func UnmarshalText(text string) (Format, error) {
	switch text {
	case "html":
		return HTML, nil
	case "png":
		return Png, nil
	case "csv":
		return Csv, nil
	case "pgm":
		return Pgm, nil
	case "tiff", "tif":
		return Tiff, nil
	default:
		return 0, fmt.Errorf("invalid format: %q", text)
	}
}

func (f Format) String() string {
	switch f {
	case HTML:
		return "html"
	case Png:
		return "png"
	case Csv:
		return "csv"
	case Pgm:
		return "pgm"
	case Tiff:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int8(f))
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}
