package state

import "github.com/nitinanarwal/Search-AI/internal/domain/search/result"

// Status is the lifecycle phase of the current search.
type Status string

// Lifecycle statuses.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is an immutable snapshot of the search lifecycle.
// Seq identifies the submit that produced it (0 for Idle).
type State struct {
	status  Status
	seq     uint64
	results []result.Result
	message string
}

// Idle is the state before any submit.
func Idle() State { return State{status: StatusIdle} }

// Loading is the state while request seq is in flight.
func Loading(seq uint64) State { return State{status: StatusLoading, seq: seq} }

// Success holds the normalized results of request seq. nil results become empty.
func Success(seq uint64, results []result.Result) State {
	out := make([]result.Result, len(results))
	copy(out, results)
	return State{status: StatusSuccess, seq: seq, results: out}
}

// Failure holds the error message of request seq.
func Failure(seq uint64, message string) State {
	return State{status: StatusError, seq: seq, message: message}
}

// Status returns the lifecycle phase.
func (s State) Status() Status {
	if s.status == "" {
		return StatusIdle
	}
	return s.status
}

// Seq returns the submit sequence number.
func (s State) Seq() uint64 { return s.seq }

// Results returns a copy of the results (empty unless Success).
func (s State) Results() []result.Result {
	out := make([]result.Result, len(s.results))
	copy(out, s.results)
	return out
}

// Message returns the error message (empty unless Error).
func (s State) Message() string { return s.message }

// IsSettled reports whether the state is Success or Error.
func (s State) IsSettled() bool {
	return s.status == StatusSuccess || s.status == StatusError
}
