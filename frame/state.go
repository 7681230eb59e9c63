package frame

// State is a point in the Frame Assembler's per-frame state machine,
// spec.md §4.7: Idle -> HeaderEmitted -> PayloadEmitted -> Done on
// encode, mirrored on decode. No state persists across frames; a new
// Assembler is created for every Encode/Decode call.
type State int

const (
	StateIdle State = iota
	StateHeaderEmitted
	StatePayloadEmitted
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHeaderEmitted:
		return "header-emitted"
	case StatePayloadEmitted:
		return "payload-emitted"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Assembler drives one encode or decode call end to end, owning the
// on-disk layout per spec.md §4.7. It is not safe to reuse across
// frames: "No multi-frame sequencing, no state persists across
// frames." Encode and Decode at package scope each construct a fresh
// Assembler so callers who don't need the state introspection never
// have to think about it.
type Assembler struct {
	state State
}

// NewAssembler returns a fresh Assembler in the Idle state.
func NewAssembler() *Assembler {
	return &Assembler{state: StateIdle}
}

// State returns the assembler's current position in the state machine.
func (a *Assembler) State() State { return a.state }
