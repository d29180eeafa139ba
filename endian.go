package blockwire

// Endianness is the byte order a format driver uses for every primitive
// field it decodes or encodes. The core never assumes platform endianness;
// every EndianSpecific value reports exactly one of these.
type Endianness int

const (
	Little Endianness = iota
	Big
)

func (e Endianness) String() string {
	switch e {
	case Little:
		return "Little"
	case Big:
		return "Big"
	default:
		return "Endianness(invalid)"
	}
}
