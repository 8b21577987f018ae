// Package locale renders user-facing editor strings in English or Japanese.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The key doubles as the English text.
const (
	InfoBar         = "Objects: %d | Selected: %d"
	ModeTranslate   = "Move mode"
	ModeRotate      = "Rotate mode"
	ModeScale       = "Scale mode"
	DeleteSelected  = "Delete selected objects"
	Undo            = "Undo"
	Redo            = "Redo"
	SelectAll       = "Select all"
	ClearSelection  = "Clear selection"
	ToggleHelp      = "Show/hide help"
	AddPrimitive    = "Add %s"
	NothingToUndo   = "Nothing to undo"
	NothingToRedo   = "Nothing to redo"
	SceneSaved      = "Saved scene %q (%d objects)"
	SceneUnchanged  = "Scene %q is unchanged"
	SceneLoaded     = "Loaded scene %q (%d objects)"
	SceneCleared    = "New scene"
	UnknownShortcut = "No shortcut for %q"
)

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

var japanese = map[string]string{
	InfoBar:         "オブジェクト数: %d | 選択中: %d",
	ModeTranslate:   "移動モード",
	ModeRotate:      "回転モード",
	ModeScale:       "スケールモード",
	DeleteSelected:  "選択オブジェクトを削除",
	Undo:            "アンドゥ",
	Redo:            "リドゥ",
	SelectAll:       "すべて選択",
	ClearSelection:  "選択解除",
	ToggleHelp:      "ヘルプ表示/非表示",
	AddPrimitive:    "%s追加",
	NothingToUndo:   "元に戻す操作はありません",
	NothingToRedo:   "やり直す操作はありません",
	SceneSaved:      "シーン %q を保存しました (%d オブジェクト)",
	SceneUnchanged:  "シーン %q に変更はありません",
	SceneLoaded:     "シーン %q を読み込みました (%d オブジェクト)",
	SceneCleared:    "新規シーン",
	UnknownShortcut: "%q のショートカットはありません",
}

// Japanese display names for the built-in primitive labels.
var japaneseLabels = map[string]string{
	"Cube":         "キューブ",
	"Sphere":       "球体",
	"Cylinder":     "シリンダー",
	"Cone":         "コーン",
	"Plane":        "プレーン",
	"Torus":        "トーラス",
	"Tetrahedron":  "四面体",
	"Octahedron":   "八面体",
	"Dodecahedron": "十二面体",
	"Icosahedron":  "二十面体",
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key := range japanese {
		_ = b.SetString(language.English, key, key)
	}
	for key, msg := range japanese {
		_ = b.SetString(language.Japanese, key, msg)
	}
	for key, msg := range japaneseLabels {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Japanese, key, msg)
	}
	return b
}

// Localizer formats messages for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the closest supported language to lang. Unparseable or
// unsupported tags fall back to English.
func New(lang string) *Localizer {
	tag := language.English
	if t, err := language.Parse(lang); err == nil {
		_, idx, conf := matcher.Match(t)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(newCatalog())),
	}
}

func (l *Localizer) Tag() language.Tag { return l.tag }

// Sprintf formats the message for key in the localizer's language.
func (l *Localizer) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Label translates a primitive label, returning it unchanged when unknown.
func (l *Localizer) Label(label string) string {
	return l.printer.Sprintf(label)
}
