package canvas

import "testing"

func TestActionKindRoundTrip(t *testing.T) {
	kinds := []ActionKind{
		ActionPlace, ActionUndo, ActionOverwrite,
		ActionRollback, ActionRollbackUndo, ActionNuke,
	}
	for _, k := range kinds {
		got, ok := ParseActionKind(k.String())
		if !ok || got != k {
			t.Errorf("round trip failed for %v (%q)", k, k.String())
		}
	}
}

func TestActionKindTokens(t *testing.T) {
	tests := []struct {
		token string
		kind  ActionKind
	}{
		{"user place", ActionPlace},
		{"user undo", ActionUndo},
		{"mod overwrite", ActionOverwrite},
		{"rollback", ActionRollback},
		{"rollback undo", ActionRollbackUndo},
		{"console nuke", ActionNuke},
	}
	for _, tt := range tests {
		k, ok := ParseActionKind(tt.token)
		if !ok || k != tt.kind {
			t.Errorf("ParseActionKind(%q) = %v, %v", tt.token, k, ok)
		}
	}
	if _, ok := ParseActionKind("other"); ok {
		t.Error("unknown token should not parse")
	}
}

func TestActionKindColors(t *testing.T) {
	coloring := map[ActionKind]bool{
		ActionPlace:        true,
		ActionOverwrite:    true,
		ActionRollback:     true,
		ActionUndo:         false,
		ActionRollbackUndo: false,
		ActionNuke:         false,
	}
	for k, want := range coloring {
		if got := k.Colors(); got != want {
			t.Errorf("%v.Colors() = %v, want %v", k, got, want)
		}
	}
}

func TestEventHasIndex(t *testing.T) {
	if (Event{Index: NoIndex}).HasIndex() {
		t.Error("NoIndex should report no index")
	}
	if !(Event{Index: 0}).HasIndex() {
		t.Error("index 0 is a real palette index")
	}
}
