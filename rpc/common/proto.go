package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Control Tags
// --------------------------------------------------------------------------

// ControlTag is a sentinel transmitted as the entire payload of a frame.
// Control tags are the only input that drives a session from one state to the next.
type ControlTag uint8

const (
	TagInit         ControlTag = iota // Enter or remain in Init
	TagSetProblem                     // Enter AwaitProblem, the next frame is the problem payload
	TagSolveProblem                   // Enter Solving
	TagGetSolution                    // Enter CollectingSolution, triggers a response frame
	TagTerminate                      // Enter Terminated, the connection is closed
)

// wire strings of the control tags (ASCII, case-sensitive, exact match)
const (
	initTagString         = "#**#INIT#**#"
	setProblemTagString   = "#**#SETPROBLEM#**#"
	solveProblemTagString = "#**#SOLVEPROBLEM#**#"
	getSolutionTagString  = "#**#GETSOLUTION#**#"
	terminateTagString    = "#**#TERMINATESERVER#**#"
)

// ControlTags lists all known control tags in protocol order
var ControlTags = []ControlTag{TagInit, TagSetProblem, TagSolveProblem, TagGetSolution, TagTerminate}

// ResolveTag interprets the frame as ASCII text and matches it exactly against the known tags.
// Any other content results in a *ProtocolError carrying the offending text.
func ResolveTag(frame []byte) (ControlTag, error) {
	switch string(frame) {
	case initTagString:
		return TagInit, nil
	case setProblemTagString:
		return TagSetProblem, nil
	case solveProblemTagString:
		return TagSolveProblem, nil
	case getSolutionTagString:
		return TagGetSolution, nil
	case terminateTagString:
		return TagTerminate, nil
	default:
		return 0, &ProtocolError{Payload: string(frame)}
	}
}

// WireString returns the wire representation of the tag
func (t ControlTag) WireString() string {
	switch t {
	case TagInit:
		return initTagString
	case TagSetProblem:
		return setProblemTagString
	case TagSolveProblem:
		return solveProblemTagString
	case TagGetSolution:
		return getSolutionTagString
	case TagTerminate:
		return terminateTagString
	default:
		return ""
	}
}

// Bytes returns the frame payload for the tag
func (t ControlTag) Bytes() []byte {
	return []byte(t.WireString())
}

// State returns the session state the tag names
func (t ControlTag) State() SessionState {
	switch t {
	case TagSetProblem:
		return StateAwaitProblem
	case TagSolveProblem:
		return StateSolving
	case TagGetSolution:
		return StateCollectingSolution
	case TagTerminate:
		return StateTerminated
	default:
		return StateInit
	}
}

func (t ControlTag) String() string {
	switch t {
	case TagInit:
		return "INIT"
	case TagSetProblem:
		return "SET_PROBLEM"
	case TagSolveProblem:
		return "SOLVE_PROBLEM"
	case TagGetSolution:
		return "GET_SOLUTION"
	case TagTerminate:
		return "TERMINATE"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Session States
// --------------------------------------------------------------------------

// SessionState is the state of the backend session automaton
type SessionState uint8

const (
	StateInit               SessionState = iota // Initial state, no action
	StateAwaitProblem                           // Receive the problem payload
	StateSolving                                // Invoke the solver
	StateCollectingSolution                     // Send the solution back
	StateTerminated                             // Close the stream, sole terminal state
)

func (s SessionState) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateAwaitProblem:
		return "SetProblem"
	case StateSolving:
		return "SolveProblem"
	case StateCollectingSolution:
		return "GetSolution"
	case StateTerminated:
		return "Terminate"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for SessionState.
// This allows SessionState to be serialized as a string in JSON.
func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for SessionState.
func (s *SessionState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	switch str {
	case "Init":
		*s = StateInit
	case "SetProblem":
		*s = StateAwaitProblem
	case "SolveProblem":
		*s = StateSolving
	case "GetSolution":
		*s = StateCollectingSolution
	case "Terminate":
		*s = StateTerminated
	default:
		return fmt.Errorf("unknown session state: %s", str)
	}

	return nil
}
