package core

import "gopkg.in/yaml.v3"

// NoteKind classifies a note or a card.
type NoteKind string

const (
	KindNote     NoteKind = "note"
	KindSummary  NoteKind = "summary"
	KindQuote    NoteKind = "quote"
	KindQuestion NoteKind = "question"
	KindToc      NoteKind = "toc"
	KindTodo     NoteKind = "todo"
)

// NoteKinds lists every kind in marker recognition order.
var NoteKinds = []NoteKind{KindNote, KindQuestion, KindQuote, KindSummary, KindToc, KindTodo}

// ParseNoteKind maps unknown values to KindNote.
func ParseNoteKind(s string) NoteKind {
	for _, k := range NoteKinds {
		if string(k) == s {
			return k
		}
	}
	return KindNote
}

// Marker returns the callout marker, e.g. "[!note]".
func (k NoteKind) Marker() string {
	return "[!" + string(k) + "]"
}

func (k *NoteKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*k = ParseNoteKind(s)
	return nil
}

// NoteStatus is the workflow state of a note.
type NoteStatus string

const (
	StatusTodo       NoteStatus = "todo"
	StatusInProgress NoteStatus = "in progress"
	StatusDone       NoteStatus = "done"
	StatusNotPlanned NoteStatus = "not planned"
	StatusArchived   NoteStatus = "archived"
)

// ParseNoteStatus maps unknown values to StatusTodo.
func ParseNoteStatus(s string) NoteStatus {
	switch NoteStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone, StatusNotPlanned, StatusArchived:
		return NoteStatus(s)
	}
	return StatusTodo
}

func (s *NoteStatus) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	*s = ParseNoteStatus(str)
	return nil
}
