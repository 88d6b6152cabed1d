package types

import (
	"time"

	"github.com/google/uuid"
)

// ReviewState tracks where a variant sits in the review loop.
type ReviewState string

// Review states. Accepted and Skipped are terminal.
const (
	StatePending   ReviewState = "pending"
	StatePresented ReviewState = "presented"
	StateAccepted  ReviewState = "accepted"
	StateEditing   ReviewState = "editing"
	StateSkipped   ReviewState = "skipped"
)

// Revision event kinds.
const (
	EventAccepted         = "accepted"
	EventEdited           = "edited"
	EventRevised          = "revised"
	EventSkipped          = "skipped"
	EventDuplicateRisk    = "duplicate_risk"
	EventGenerationFailed = "generation_failed"
)

// RevisionEvent records one edit or state change during review.
type RevisionEvent struct {
	ID         string    `json:"id"`
	OfficialID string    `json:"official_id"`
	Kind       string    `json:"kind"`
	Note       string    `json:"note,omitempty"`
	Edited     bool      `json:"edited"`
	At         time.Time `json:"at"`
}

// Session is the aggregate state of one end-to-end run. It is owned by the
// run's single control path; no locking is needed.
type Session struct {
	ID                 string                 `json:"session_id"`
	StartedAt          time.Time              `json:"started_at"`
	Brief              *Brief                 `json:"brief,omitempty"`
	BaseLetter         *Letter                `json:"base_letter,omitempty"`
	SelectedRecipients []string               `json:"selected_recipients"`
	Variants           map[string]*Letter     `json:"variants"`
	VariantOrder       []string               `json:"variant_order"`
	States             map[string]ReviewState `json:"states"`
	RevisionLog        []RevisionEvent        `json:"revision_log"`
}

// NewSession creates a session with a time-derived identifier.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        now.Format("20060102_150405"),
		StartedAt: now,
		Variants:  make(map[string]*Letter),
		States:    make(map[string]ReviewState),
	}
}

// SetVariant stores a variant, preserving insertion (selection) order.
func (s *Session) SetVariant(officialID string, letter *Letter) {
	if _, exists := s.Variants[officialID]; !exists {
		s.VariantOrder = append(s.VariantOrder, officialID)
	}
	s.Variants[officialID] = letter
}

// State returns the review state of a variant, defaulting to Pending.
func (s *Session) State(officialID string) ReviewState {
	if state, ok := s.States[officialID]; ok {
		return state
	}
	return StatePending
}

// SetState records a variant's review state.
func (s *Session) SetState(officialID string, state ReviewState) {
	s.States[officialID] = state
}

// AppendEvent adds a revision-log entry and returns it.
func (s *Session) AppendEvent(officialID, kind, note string, edited bool, at time.Time) RevisionEvent {
	event := RevisionEvent{
		ID:         uuid.NewString(),
		OfficialID: officialID,
		Kind:       kind,
		Note:       note,
		Edited:     edited,
		At:         at,
	}
	s.RevisionLog = append(s.RevisionLog, event)
	return event
}

// AcceptedIDs returns the accepted variant ids in insertion order.
func (s *Session) AcceptedIDs() []string {
	var ids []string
	for _, id := range s.VariantOrder {
		if s.State(id) == StateAccepted {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasDuplicateRisk reports whether a duplicate_risk event was logged for the official.
func (s *Session) HasDuplicateRisk(officialID string) bool {
	for _, event := range s.RevisionLog {
		if event.OfficialID == officialID && event.Kind == EventDuplicateRisk {
			return true
		}
	}
	return false
}
