package event

// Event message field numbers on the wire.
const (
	FieldTime        = 6
	FieldDistance    = 10
	FieldGeolocation = 12
	FieldUserInput   = 13
	FieldTextMessage = 14
)

// DistanceMeasurement submessage field numbers.
const (
	FieldSourceID      = 1
	FieldDistanceValue = 2
)

// Event is the decoded form of one frame. It is a closed set: the
// concrete types below are the only implementations.
type Event interface {
	event()
}

// Measurement is the decoded DistanceMeasurement submessage.
//
// HasDistance distinguishes "sensor reported exactly zero" from
// "sensor omitted the distance field"; the two must never be collapsed
// because they point at different faults (sensor vs. link). Underrun
// records that a distance field was present but cut short of its four
// bytes, which the decoder skips without setting a value.
type Measurement struct {
	SourceID    uint64
	Distance    float32
	HasDistance bool
	Underrun    bool
}

// Distance reports a distance measurement from one ranging source.
// Raw keeps the submessage bytes exactly as received for diagnostics.
type Distance struct {
	Measurement
	Raw []byte
}

// Geolocation marks a geolocation event. The payload is not decoded;
// presence alone is the signal.
type Geolocation struct{}

// UserInput marks a button press on the device.
type UserInput struct{}

// TextMessage carries a free-form payload from the device. No string
// decoding is assumed; reporters may attempt interpretation.
type TextMessage struct {
	Raw []byte
}

// Unknown labels a frame with no recognized field. FieldNum is the
// first unrecognized field number seen, zero if the frame had no
// parseable field at all.
type Unknown struct {
	FieldNum int
	FrameLen int
}

// Truncated reports a length-delimited field whose declared length
// exceeds the bytes remaining in the frame. Frame holds the complete
// frame for a diagnostic hex dump.
type Truncated struct {
	FieldNum  int
	Expected  int
	Available int
	Frame     []byte
}

func (Distance) event()    {}
func (Geolocation) event() {}
func (UserInput) event()   {}
func (TextMessage) event() {}
func (Unknown) event()     {}
func (Truncated) event()   {}
