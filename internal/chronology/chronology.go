// Package chronology decides whether an application's stage events are in an
// admissible order: exactly one APPLIED stage that nothing precedes, and at
// most one final stage that nothing follows. Equal dates never conflict.
package chronology

import (
	"time"

	"github.com/applytrail/applytrail/internal/models"
)

// Code identifies which chronology rule a stage set breaks.
type Code string

// Violation codes, listed in the order they are checked.
const (
	CodeMissingFirstStage     Code = "MISSING_FIRST_STAGE"
	CodeMoreThanOneFirstStage Code = "MORE_THAN_ONE_FIRST_STAGE"
	CodeFirstStageOutOfOrder  Code = "FIRST_STAGE_OUT_OF_ORDER"
	CodeMoreThanOneFinalStage Code = "MORE_THAN_ONE_FINAL_STAGE"
	CodeFinalStageOutOfOrder  Code = "FINAL_STAGE_OUT_OF_ORDER"
)

// Violation is the error returned for a stage set that breaks a chronology rule.
type Violation struct {
	Code    Code
	Message string
}

func (v *Violation) Error() string { return v.Message }

// Sentinel violations. Validate returns these exact values.
var (
	ErrMissingFirstStage = &Violation{
		Code:    CodeMissingFirstStage,
		Message: "an application must have an APPLIED stage",
	}
	ErrMoreThanOneFirstStage = &Violation{
		Code:    CodeMoreThanOneFirstStage,
		Message: "an application can only have one APPLIED stage",
	}
	ErrFirstStageOutOfOrder = &Violation{
		Code:    CodeFirstStageOutOfOrder,
		Message: "no stage can be dated before the APPLIED stage",
	}
	ErrMoreThanOneFinalStage = &Violation{
		Code:    CodeMoreThanOneFinalStage,
		Message: "an application can only have one of ACCEPTED, REJECTED or WITHDRAWN",
	}
	ErrFinalStageOutOfOrder = &Violation{
		Code:    CodeFinalStageOutOfOrder,
		Message: "no stage can be dated after an ACCEPTED, REJECTED or WITHDRAWN stage",
	}
)

// Event is the part of a stage the rules look at.
type Event struct {
	Type models.StageType
	Date time.Time
}

// FromStages extracts the events of persisted stages.
func FromStages(stages []models.Stage) []Event {
	events := make([]Event, len(stages))
	for i, s := range stages {
		events[i] = Event{Type: s.Type, Date: s.Date}
	}

	return events
}

// Validate returns nil if events form a valid chronology, otherwise the first
// violated rule in priority order. Later rules are not evaluated once one fails.
func Validate(events []Event) error {
	first, err := firstStage(events)
	if err != nil {
		return err
	}

	for _, e := range events {
		if e.Date.Before(first.Date) {
			return ErrFirstStageOutOfOrder
		}
	}

	final, err := finalStage(events)
	if err != nil {
		return err
	}

	if final == nil {
		return nil
	}

	for _, e := range events {
		if e.Date.After(final.Date) {
			return ErrFinalStageOutOfOrder
		}
	}

	return nil
}

// firstStage returns the single APPLIED event.
func firstStage(events []Event) (Event, error) {
	var (
		first Event
		count int
	)

	for _, e := range events {
		if e.Type.IsFirst() {
			first = e
			count++
		}
	}

	switch {
	case count == 0:
		return Event{}, ErrMissingFirstStage
	case count > 1:
		return Event{}, ErrMoreThanOneFirstStage
	}

	return first, nil
}

// finalStage returns the final event, or nil if the application is still open.
func finalStage(events []Event) (*Event, error) {
	var final *Event

	for i := range events {
		if !events[i].Type.IsFinal() {
			continue
		}

		if final != nil {
			return nil, ErrMoreThanOneFinalStage
		}

		final = &events[i]
	}

	return final, nil
}
