package structure

import "fmt"

type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
)

const FormatSDF = "sdf"

type Request struct {
	PrimaryID   string `json:"primary_id"`
	SecondaryID string `json:"secondary_id"`
}

// Document is an immutable structure payload together with the source that
// produced it.
type Document struct {
	Source Source `json:"source"`
	Origin string `json:"origin"`
	ID     string `json:"id"`
	Format string `json:"format"`
	Data   string `json:"data"`
}

type State int

const (
	AttemptingPrimary State = iota
	AttemptingSecondary
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case AttemptingPrimary:
		return "attempting_primary"
	case AttemptingSecondary:
		return "attempting_secondary"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) Terminal() bool {
	return s == Resolved || s == Failed
}

// Attempt records one network attempt against a source.
type Attempt struct {
	Source Source
	Origin string
	ID     string
	Err    error
}

// Outcome is the tagged result of one resolution: Document is set when
// State is Resolved, Err when State is Failed.
type Outcome struct {
	State    State
	Document *Document
	Err      error
	Attempts []Attempt
}

func (o *Outcome) Resolved() bool {
	return o.State == Resolved && o.Document != nil
}
