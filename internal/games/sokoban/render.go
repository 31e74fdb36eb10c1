package sokoban

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Render draws the HUD, the board and the status banner.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.renderOverlay(dst, "Level failed to load", g.loadErr.Error())
		return
	}
	if g.state == nil {
		return
	}

	boardW := g.state.Width() * cellW
	boardH := g.state.Height()
	// HUD above, banner below, one column of margin each side
	g.tooSmall = boardW+2 > dst.Width() || boardH+hudHeight+2 > dst.Height()
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderHUD(dst)

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-2)
	board := platformcore.CenteredRect(area.W, area.H, boardW, boardH)
	board.Y += area.Y
	g.renderBoard(dst, board)
	g.renderBanner(dst, board.Bottom()+1)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	name := g.level.Name
	if name == "" {
		name = g.level.ID
	}
	dst.DrawTextColored(1, 0, "SOKOBAN", platformcore.ColorBrightWhite)
	dst.DrawText(10, 0, name)

	steps := fmt.Sprintf("Steps: %d", g.state.Steps())
	if limit := g.state.MaxSteps(); limit > 0 {
		steps = fmt.Sprintf("Steps: %d/%d", g.state.Steps(), limit)
	}
	stepsColor := platformcore.ColorDefault
	if left := g.state.StepsLeft(); left >= 0 && left <= 5 {
		stepsColor = platformcore.ColorBrightRed
	}
	dst.DrawTextColored(1, 1, steps, stepsColor)

	blocks := fmt.Sprintf("Goals: %d/%d", g.state.BlocksOnGoal(), g.state.BlockCount())
	dst.DrawText(dst.Width()-len(blocks)-1, 1, blocks)
	dst.DrawHLine(0, 2, dst.Width(), '─')
}

func (g *Game) renderBoard(dst *platformcore.Screen, at platformcore.Rect) {
	grid := g.state.Grid()
	facing := g.state.Facing()

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			c := core.C(x, y)
			glyph, ok := g.glyphFor(grid, c, facing)
			if !ok {
				continue
			}
			sx := at.X + x*cellW
			sy := at.Y + y
			dst.SetColored(sx, sy, glyph.Runes[0], glyph.Color)
			dst.SetColored(sx+1, sy, glyph.Runes[1], glyph.Color)
		}
	}
}

// glyphFor picks the glyph of one cell. Empty cells bordering the playable area
// are drawn as walls; the rest of the void stays blank.
func (g *Game) glyphFor(grid *core.Grid, c core.Coord, facing core.Dir) (Glyph, bool) {
	t := grid.Get(c)
	switch t.Occupant() {
	case core.OccupantPlayer:
		glyph := g.theme.Player[facing]
		if t.Underlay() == core.UnderlayGoal {
			glyph.Color = g.theme.Goal.Color
		}
		return glyph, true
	case core.OccupantBlock:
		if t.Underlay() == core.UnderlayGoal {
			return g.theme.BlockOnGoal, true
		}
		return g.theme.Block, true
	}

	switch t.Underlay() {
	case core.UnderlayGoal:
		return g.theme.Goal, true
	case core.UnderlayFloor:
		return g.theme.Floor, true
	}

	if bordersPlayable(grid, c) {
		return g.theme.Wall, true
	}
	return Glyph{}, false
}

func bordersPlayable(grid *core.Grid, c core.Coord) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if grid.Passable(c.Add(dx, dy)) {
				return true
			}
		}
	}
	return false
}

func (g *Game) renderBanner(dst *platformcore.Screen, y int) {
	y = platformcore.Min(y, dst.Height()-1)
	switch g.state.Status() {
	case core.StatusCleared:
		dst.DrawTextCenteredColored(y, "CLEARED!  R to replay", platformcore.ColorBrightGreen)
	case core.StatusStepLimitReached:
		dst.DrawTextCenteredColored(y, "OUT OF STEPS  R to retry", platformcore.ColorBrightRed)
	}
}

func (g *Game) renderOverlay(dst *platformcore.Screen, title, detail string) {
	midY := dst.Height() / 2
	dst.DrawTextCenteredColored(midY-1, title, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(midY+1, detail)
}
