package entities

import (
	"encoding/json"
	"strings"
)

// MeetingType classifies what kind of meeting a transcript came from
type MeetingType string

// MeetingType constants
const (
	MeetingTypeRecruiting        MeetingType = "recruiting"
	MeetingTypeInterview         MeetingType = "interview"
	MeetingTypeSales             MeetingType = "sales"
	MeetingTypeCustomerDiscovery MeetingType = "customer_discovery"
	MeetingTypePlanning          MeetingType = "planning"
	MeetingTypeStatusUpdate      MeetingType = "status_update"
	MeetingTypeStandup           MeetingType = "standup"
	MeetingTypeTechnicalReview   MeetingType = "technical_review"
	MeetingTypeSupport           MeetingType = "support"
	MeetingTypeOneOnOne          MeetingType = "1on1"
	MeetingTypeOther             MeetingType = "other"
)

var validMeetingTypes = map[MeetingType]bool{
	MeetingTypeRecruiting:        true,
	MeetingTypeInterview:         true,
	MeetingTypeSales:             true,
	MeetingTypeCustomerDiscovery: true,
	MeetingTypePlanning:          true,
	MeetingTypeStatusUpdate:      true,
	MeetingTypeStandup:           true,
	MeetingTypeTechnicalReview:   true,
	MeetingTypeSupport:           true,
	MeetingTypeOneOnOne:          true,
	MeetingTypeOther:             true,
}

// IsValid reports whether t is a member of the fixed enumeration
func (t MeetingType) IsValid() bool {
	return validMeetingTypes[t]
}

// UnmarshalJSON decodes a meeting type leniently: values outside the fixed
// enumeration collapse to "other" instead of failing the whole memo.
func (t *MeetingType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mt := MeetingType(strings.TrimSpace(strings.ToLower(raw)))
	if !mt.IsValid() {
		mt = MeetingTypeOther
	}
	*t = mt
	return nil
}

// Memo is the structured extraction attempt for one transcript. Every field
// reflects only explicitly stated content; empty slices mean "not discussed".
// A Memo is created once per extraction attempt and never mutated afterwards.
type Memo struct {
	MeetingType    MeetingType      `json:"meeting_type"`
	Title          string           `json:"title"`
	SummaryBullets []string         `json:"summary_bullets"`
	KeyTopics      []string         `json:"key_topics"`
	Decisions      []string         `json:"decisions"`
	RisksBlockers  []string         `json:"risks_blockers"`
	OpenQuestions  []string         `json:"open_questions"`
	ActionItems    []MemoActionItem `json:"action_items"`
	NotesBySection []NotesSection   `json:"notes_by_section"`
}

// Action-item defaults for absent owner/due fields
const (
	OwnerUnassigned = "Unassigned"
	DueNotStated    = "Not stated"
)

// MemoActionItem is one extracted commitment. The completion service may emit
// it either as a plain string or as an {item, owner, due} record; both decode
// into this type.
type MemoActionItem struct {
	Item  string `json:"item"`
	Owner string `json:"owner"`
	Due   string `json:"due"`

	// plain is set when the source value was a bare string; such items render
	// verbatim without owner/due decoration.
	plain bool
}

// UnmarshalJSON accepts either a JSON string or an {item, owner, due} object
func (a *MemoActionItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Item = s
		a.plain = true
		return nil
	}

	type record MemoActionItem
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*a = MemoActionItem(r)
	return nil
}

// Normalize renders the item to its canonical single-line form.
// Structured items become "<item> — <owner> (Due: <due>)" with defaults filled
// in; plain items pass through trimmed. Returns "" for items empty after
// trimming, which callers drop.
func (a MemoActionItem) Normalize() string {
	item := strings.TrimSpace(a.Item)
	if item == "" {
		return ""
	}
	if a.plain {
		return item
	}

	owner := strings.TrimSpace(a.Owner)
	if owner == "" {
		owner = OwnerUnassigned
	}
	due := strings.TrimSpace(a.Due)
	if due == "" {
		due = DueNotStated
	}
	return item + " — " + owner + " (Due: " + due + ")"
}

// NotesSection is one heading of the detailed notes, mirroring an agenda item
// when an agenda was supplied.
type NotesSection struct {
	Heading string   `json:"heading"`
	Bullets []string `json:"bullets"`
}

// IsEmpty reports whether the memo carries no extracted content at all
func (m *Memo) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.Title == "" &&
		len(m.SummaryBullets) == 0 &&
		len(m.KeyTopics) == 0 &&
		len(m.Decisions) == 0 &&
		len(m.RisksBlockers) == 0 &&
		len(m.OpenQuestions) == 0 &&
		len(m.ActionItems) == 0 &&
		len(m.NotesBySection) == 0
}
