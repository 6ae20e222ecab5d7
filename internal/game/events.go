package game

// EventKind is a typed notification for the audio/haptics collaborators.
// The sim emits these; it never depends on what the sink does with them.
type EventKind int

const (
	EventFire EventKind = iota
	EventImpact
	EventNuclearFlash
	EventLanding
	EventWin
	EventLoss
)

func (k EventKind) String() string {
	switch k {
	case EventFire:
		return "fire"
	case EventImpact:
		return "impact"
	case EventNuclearFlash:
		return "nuclear_flash"
	case EventLanding:
		return "landing"
	case EventWin:
		return "win"
	case EventLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Event carries a kind plus the position/magnitude the sink may want.
type Event struct {
	Kind      EventKind
	X, Y      float64
	Magnitude float64 // blast radius, fall distance, etc.
}

// EventSink receives typed events from the sim.
type EventSink interface {
	Emit(Event)
}

// NopSink discards all events; the default when no collaborator is wired.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// RecordingSink keeps every event, for tests.
type RecordingSink struct {
	Events []Event
}

func (s *RecordingSink) Emit(e Event) { s.Events = append(s.Events, e) }

// Count returns how many events of the given kind were recorded.
func (s *RecordingSink) Count(k EventKind) int {
	n := 0
	for _, e := range s.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
