package editor

import (
	"go.uber.org/zap"

	"github.com/sceneworks/sceneedit/internal/locale"
	"github.com/sceneworks/sceneedit/internal/shortcut"
)

// numberKeys lists the primitives added by the digit shortcuts, in order.
var numberKeys = []string{"cube", "sphere", "cylinder", "cone", "plane", "torus"}

func (s *Session) bindShortcuts() {
	l := s.loc
	mode := func(m string) func() {
		return func() { _ = s.SetTransformMode(m) }
	}
	s.keys.Register("g", l.Sprintf(locale.ModeTranslate), mode("translate"))
	s.keys.Register("r", l.Sprintf(locale.ModeRotate), mode("rotate"))
	s.keys.Register("s", l.Sprintf(locale.ModeScale), mode("scale"))
	s.keys.Register("delete", l.Sprintf(locale.DeleteSelected), func() { s.DeleteSelected() })
	s.keys.Register("ctrl+z", l.Sprintf(locale.Undo), func() { s.Undo() })
	s.keys.Register("ctrl+y", l.Sprintf(locale.Redo), func() { s.Redo() })
	s.keys.Register("ctrl+shift+z", l.Sprintf(locale.Redo), func() { s.Redo() })
	s.keys.Register("a", l.Sprintf(locale.SelectAll), s.SelectAll)
	s.keys.Register("escape", l.Sprintf(locale.ClearSelection), s.ClearSelection)
	s.keys.Register("h", l.Sprintf(locale.ToggleHelp), func() { s.ToggleHelp() })
	for i, kind := range numberKeys {
		p := s.factory.Table().Get(kind)
		if p == nil {
			continue
		}
		s.keys.Register(string(rune('1'+i)), l.Sprintf(locale.AddPrimitive, l.Label(p.Label)), func() {
			if _, err := s.AddPrimitive(kind); err != nil {
				s.log.Warn("shortcut add", zap.String("kind", kind), zap.Error(err))
			}
		})
	}
}

// HandleKey runs the shortcut for a written chord such as "ctrl+z".
func (s *Session) HandleKey(chord string) bool {
	return s.keys.Handle(shortcut.Parse(chord))
}
