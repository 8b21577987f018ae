package event

import "github.com/sceneworks/sceneedit/internal/scene"

// SelectionChanged is published after every change of the selection,
// including those caused by add, delete, undo and redo.
type SelectionChanged struct {
	Selected []*scene.Entity
	Total    int // entities in the scene
}

// HistoryChanged is published after every history mutation.
type HistoryChanged struct {
	CanUndo bool
	CanRedo bool
	Cursor  int
	Len     int
}

// SceneReplaced is published when a new or loaded scene replaces the current one.
type SceneReplaced struct {
	Name     string
	Entities int
}
