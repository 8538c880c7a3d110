package parallel

import "fmt"

// EdgePolicy decides what happens to pixels that do not fit an integral
// number of tiles (dynamic) or rows per worker (static).
type EdgePolicy uint8

const (
	// EdgeCrop uses plain integer division: the grid is ⌊W/B⌋ × ⌊H/B⌋ tiles
	// and every worker gets ⌊H/N⌋ rows. Remainder pixels are never rendered
	// and keep the buffer's zero value.
	EdgeCrop EdgePolicy = iota

	// EdgeCover adds partial tiles on the right and bottom edges and spreads
	// the remainder rows over the first workers, so every pixel is rendered.
	EdgeCover
)

// String returns the config name of the policy.
func (p EdgePolicy) String() string {
	switch p {
	case EdgeCrop:
		return "crop"
	case EdgeCover:
		return "cover"
	default:
		return fmt.Sprintf("EdgePolicy(%d)", uint8(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p EdgePolicy) MarshalText() ([]byte, error) {
	switch p {
	case EdgeCrop, EdgeCover:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("parallel: unknown edge policy %d", uint8(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *EdgePolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "crop", "":
		*p = EdgeCrop
	case "cover":
		*p = EdgeCover
	default:
		return fmt.Errorf("parallel: unknown edge policy %q", string(text))
	}
	return nil
}
