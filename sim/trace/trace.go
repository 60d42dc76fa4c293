package trace

// TraceLevel controls the verbosity of lifecycle tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelChoices captures scanner choices only.
	TraceLevelChoices TraceLevel = "choices"
	// TraceLevelFull captures scanner choices and every state transition.
	TraceLevelFull TraceLevel = "full"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelChoices: true,
	TraceLevelFull:    true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Recorder collects lifecycle records during one replication.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	Level       TraceLevel
	Transitions []TransitionRecord
	Choices     []ScannerChoiceRecord
}

// NewRecorder creates a Recorder ready for recording.
func NewRecorder(level TraceLevel) *Recorder {
	return &Recorder{
		Level:       level,
		Transitions: make([]TransitionRecord, 0),
		Choices:     make([]ScannerChoiceRecord, 0),
	}
}

// RecordTransition appends a transition record when the level is full.
func (r *Recorder) RecordTransition(rec TransitionRecord) {
	if r == nil || r.Level != TraceLevelFull {
		return
	}
	r.Transitions = append(r.Transitions, rec)
}

// RecordChoice appends a scanner-choice record unless tracing is off.
// The loads slice is copied.
func (r *Recorder) RecordChoice(rec ScannerChoiceRecord) {
	if r == nil || r.Level == TraceLevelNone || r.Level == "" {
		return
	}
	rec.Loads = append([]int(nil), rec.Loads...)
	r.Choices = append(r.Choices, rec)
}

// ForPassenger returns the transitions of one passenger in recording order.
func (r *Recorder) ForPassenger(id int) []TransitionRecord {
	if r == nil {
		return nil
	}
	var out []TransitionRecord
	for _, t := range r.Transitions {
		if t.PassengerID == id {
			out = append(out, t)
		}
	}
	return out
}
