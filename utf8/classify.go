package utf8

// LeadClass is the role a byte can play at the start of a UTF-8 sequence.
type LeadClass uint8

const (
	Invalid LeadClass = iota
	ASCII
	Lead2
	Lead3
	Lead4
	Lead5
	Lead6
)

var leadClassNames = [...]string{
	Invalid: "invalid",
	ASCII:   "ascii",
	Lead2:   "lead2",
	Lead3:   "lead3",
	Lead4:   "lead4",
	Lead5:   "lead5",
	Lead6:   "lead6",
}

func (c LeadClass) String() string {
	if int(c) < len(leadClassNames) {
		return leadClassNames[c]
	}
	return "unknown"
}

// Len returns the total sequence length for the class, or 0 for Invalid.
func (c LeadClass) Len() int {
	return int(c)
}

// Continuations returns how many continuation bytes follow the lead byte.
// Invalid reports 0.
func (c LeadClass) Continuations() int {
	if c == Invalid {
		return 0
	}
	return int(c) - 1
}

// Valid reports whether the class is a usable lead byte.
func (c LeadClass) Valid() bool {
	return c != Invalid
}

// leadTable maps every byte value to its class.
var leadTable = buildLeadTable()

func buildLeadTable() (t [256]LeadClass) {
	for i := range t {
		b := byte(i)
		switch {
		case b <= 0x7F:
			t[i] = ASCII
		case b <= 0xC1:
			t[i] = Invalid // continuation bytes and overlong ASCII
		case b <= 0xDF:
			t[i] = Lead2
		case b <= 0xEF:
			t[i] = Lead3
		case b <= 0xF7:
			t[i] = Lead4
		case b <= 0xFB:
			t[i] = Lead5
		case b <= 0xFD:
			t[i] = Lead6
		default:
			t[i] = Invalid
		}
	}
	return t
}

// Classify returns the lead-byte class of b.
func Classify(b byte) LeadClass {
	return leadTable[b]
}

// IsContinuation reports whether b is in 0x80..0xBF.
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// IsLead reports whether b can start a sequence, ASCII included.
func IsLead(b byte) bool {
	return leadTable[b] != Invalid
}
