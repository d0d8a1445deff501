package mode

import "fmt"

type Mode uint8

const (
	Monochromatic Mode = iota
	Spectral
)

func UnmarshalText(text string) (Mode, error) {
	switch text {
	case "m", "mono":
		return Monochromatic, nil
	case "s", "spectral":
		return Spectral, nil
	default:
		return 0, fmt.Errorf("invalid mode: %q", text)
	}
}

func (m Mode) String() string {
	switch m {
	case Monochromatic:
		return "mono"
	case Spectral:
		return "spectral"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}
