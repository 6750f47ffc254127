// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/malbuddy/malbuddy/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every supported icon variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Question
	Mark
	Star
	Folder
	Key
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "🎉", nerd: "", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "💀", nerd: "", plain: "✖", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "…", kaomoji: "(・_・ヾ", squares: "🟦"},
	Question: {emoji: "🤨", nerd: "", plain: "?", kaomoji: "(°ロ°)?", squares: "🟪"},
	Mark:     {emoji: "📌", nerd: "", plain: "*", kaomoji: "(•̀ᴗ•́)", squares: "🟧"},
	Star:     {emoji: "⭐", nerd: "", plain: "★", kaomoji: "(☆▽☆)", squares: "🟨"},
	Folder:   {emoji: "📁", nerd: "", plain: "▸", kaomoji: "(っ˘ω˘ς)", squares: "🟫"},
	Key:      {emoji: "🔑", nerd: "", plain: "⚷", kaomoji: "(¬‿¬)", squares: "⬛"},
}

// Get renders i in the configured variant. Unknown icons and variants render as an empty string.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.get()
}
