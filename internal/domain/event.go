package domain

type EventKind string

const (
	EventStarted  EventKind = "started"
	EventChecking EventKind = "checking"
	EventFinished EventKind = "finished"
	EventDone     EventKind = "done"
)

// Event announces one change of a batch run. Index and Record are set for
// checking and finished events. Checked counts terminal records so far, in
// completion order.
type Event struct {
	Kind    EventKind
	Index   int
	Record  LinkRecord
	Checked int
	Total   int
}
