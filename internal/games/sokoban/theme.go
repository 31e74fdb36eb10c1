package sokoban

import (
	"github.com/vovakirdan/tui-sokoban/internal/config"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Glyph is the two-column drawing of one board cell.
type Glyph struct {
	Runes [2]rune
	Color platformcore.Color
}

// Theme holds the glyphs used to draw a board.
type Theme struct {
	Wall        Glyph
	Floor       Glyph
	Goal        Glyph
	Block       Glyph
	BlockOnGoal Glyph
	Player      [4]Glyph // indexed by core.Dir
}

// DefaultTheme returns the theme of the default configuration.
func DefaultTheme() Theme {
	return ThemeFromConfig(config.DefaultSokobanConfig().Theme)
}

// ThemeFromConfig converts a theme section into glyphs. Empty or unknown entries
// fall back to the default theme.
func ThemeFromConfig(tc config.ThemeConfig) Theme {
	def := config.DefaultSokobanConfig().Theme
	return Theme{
		Wall:        makeGlyph(tc.Wall, tc.Colors.Wall, def.Wall, def.Colors.Wall),
		Floor:       makeGlyph(tc.Floor, tc.Colors.Floor, def.Floor, def.Colors.Floor),
		Goal:        makeGlyph(tc.Goal, tc.Colors.Goal, def.Goal, def.Colors.Goal),
		Block:       makeGlyph(tc.Block, tc.Colors.Block, def.Block, def.Colors.Block),
		BlockOnGoal: makeGlyph(tc.BlockOnGoal, tc.Colors.BlockOnGoal, def.BlockOnGoal, def.Colors.BlockOnGoal),
		Player: [4]Glyph{
			core.DirUp:    makeGlyph(tc.Player.Up, tc.Colors.Player, def.Player.Up, def.Colors.Player),
			core.DirRight: makeGlyph(tc.Player.Right, tc.Colors.Player, def.Player.Right, def.Colors.Player),
			core.DirDown:  makeGlyph(tc.Player.Down, tc.Colors.Player, def.Player.Down, def.Colors.Player),
			core.DirLeft:  makeGlyph(tc.Player.Left, tc.Colors.Player, def.Player.Left, def.Colors.Player),
		},
	}
}

func makeGlyph(text, color, defText, defColor string) Glyph {
	if text == "" {
		text = defText
	}
	c, ok := platformcore.ParseColor(color)
	if !ok {
		c, _ = platformcore.ParseColor(defColor)
	}

	g := Glyph{Runes: [2]rune{' ', ' '}, Color: c}
	i := 0
	for _, r := range text {
		if i == len(g.Runes) {
			break
		}
		g.Runes[i] = r
		i++
	}
	return g
}
