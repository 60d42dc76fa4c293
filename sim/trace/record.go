// Package trace provides passenger lifecycle recording for checkpoint analysis.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// TransitionRecord captures one passenger state change.
type TransitionRecord struct {
	PassengerID int
	Clock       float64
	From        string
	To          string
}

// ScannerChoiceRecord captures a shortest-queue scanner decision together
// with the loads (queue length + units in use) seen at decision time.
type ScannerChoiceRecord struct {
	PassengerID int
	Clock       float64
	Chosen      int
	Loads       []int
}
