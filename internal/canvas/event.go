package canvas

import "time"

// ActionKind classifies a log entry by what the server did to the cell.
type ActionKind int

const (
	ActionPlace ActionKind = iota
	ActionUndo
	ActionOverwrite
	ActionRollback
	ActionRollbackUndo
	ActionNuke
)

var actionNames = map[ActionKind]string{
	ActionPlace:        "user place",
	ActionUndo:         "user undo",
	ActionOverwrite:    "mod overwrite",
	ActionRollback:     "rollback",
	ActionRollbackUndo: "rollback undo",
	ActionNuke:         "console nuke",
}

var actionKinds = map[string]ActionKind{
	"user place":    ActionPlace,
	"user undo":     ActionUndo,
	"mod overwrite": ActionOverwrite,
	"rollback":      ActionRollback,
	"rollback undo": ActionRollbackUndo,
	"console nuke":  ActionNuke,
}

// String returns the token used for this kind in pxls logs.
func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseActionKind maps a log token back to its kind.
func ParseActionKind(s string) (ActionKind, bool) {
	k, ok := actionKinds[s]
	return k, ok
}

// Colors reports whether this kind paints a cell. Place, Overwrite and
// Rollback put pixels on the canvas; the remaining kinds revert them.
func (k ActionKind) Colors() bool {
	switch k {
	case ActionPlace, ActionOverwrite, ActionRollback:
		return true
	}
	return false
}

// NoIndex marks an event that carries no palette index.
const NoIndex = -1

// Event is one parsed log record. Index is NoIndex for entries that do not
// reference a palette color (reverts without a restored color).
type Event struct {
	Time time.Time
	User string
	X    int
	Y    int
	// Index is the palette index, or NoIndex.
	Index int
	Kind  ActionKind
	// Line is the 1-based position in the source log, for error reporting.
	Line int
}

// HasIndex reports whether the event carries a palette index.
func (e Event) HasIndex() bool { return e.Index != NoIndex }
