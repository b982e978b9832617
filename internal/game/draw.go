package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Battle-Sense/internal/battle"
)

const (
	cardWidth  = 300
	cardHeight = 64
	cardGap    = 12
	columnPad  = 40
	menuTop    = 420
)

var (
	panelBg     = color.RGBA{R: 14, G: 16, B: 14, A: 230}
	panelBorder = color.RGBA{R: 55, G: 80, B: 55, A: 255}
	activeRing  = color.RGBA{R: 240, G: 210, B: 80, A: 255}
	targetRing  = color.RGBA{R: 240, G: 90, B: 60, A: 255}
	textBright  = color.RGBA{R: 220, G: 230, B: 220, A: 255}
	textDim     = color.RGBA{R: 120, G: 130, B: 120, A: 255}
)

type maxHealther interface{ MaxHealth() int }

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	o := g.session.Orchestrator
	g.drawText(screen, fmt.Sprintf("%s   tick %d   phase %s", g.opts.Scenario.Name, o.Ticks(), o.Phase()), columnPad, 14, textBright)

	active := o.Turns().Current()
	target := g.selectedTarget()
	if g.offer.Menu != battle.MenuTargetSelection || !g.humanTurn() {
		target = nil
	}
	for i, c := range g.session.Players() {
		g.drawCard(screen, c, columnPad, 48+i*(cardHeight+cardGap), c == active, c == target)
	}
	for i, c := range g.session.Enemies() {
		g.drawCard(screen, c, arenaWidth-columnPad-cardWidth, 48+i*(cardHeight+cardGap), c == active, c == target)
	}

	g.drawMenu(screen)
	g.drawText(screen, g.status, columnPad, screenHeight-16, textDim)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.feed.Draw(screen, arenaWidth, screenHeight)
}

func (g *Game) drawCard(screen *ebiten.Image, c battle.Combatant, x, y int, active, targeted bool) {
	fx, fy := float32(x), float32(y)
	vector.FillRect(screen, fx, fy, cardWidth, cardHeight, panelBg, false)
	border, width := color.Color(panelBorder), float32(1)
	switch {
	case active:
		border, width = activeRing, 2
	case targeted:
		border, width = targetRing, 2
	}
	vector.StrokeRect(screen, fx, fy, cardWidth, cardHeight, width, border, false)
	vector.FillRect(screen, fx+6, fy+8, 4, 12, sideColor(c.Side()), false)

	nameCol := textBright
	if !c.IsAlive() {
		nameCol = textDim
	}
	g.drawText(screen, c.Name(), x+16, y+18, nameCol)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("ATK %d  DEF %d  SPD %d", c.Attack(), c.Defense(), c.Speed()), x+140, y+6)

	maxHP := c.Health()
	if mh, ok := c.(maxHealther); ok {
		maxHP = mh.MaxHealth()
	}
	frac := float32(0)
	if maxHP > 0 {
		frac = float32(c.Health()) / float32(maxHP)
	}
	barW := float32(cardWidth - 32)
	vector.FillRect(screen, fx+16, fy+36, barW, 10, color.RGBA{R: 40, G: 20, B: 20, A: 255}, false)
	vector.FillRect(screen, fx+16, fy+36, barW*frac, 10, hpColor(frac), false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", c.Health(), maxHP), x+16, y+46)
}

func hpColor(frac float32) color.RGBA {
	switch {
	case frac > 0.6:
		return color.RGBA{R: 80, G: 190, B: 90, A: 255}
	case frac > 0.3:
		return color.RGBA{R: 220, G: 180, B: 60, A: 255}
	default:
		return color.RGBA{R: 210, G: 60, B: 50, A: 255}
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	x, y := columnPad, menuTop
	vector.FillRect(screen, float32(x), float32(y), cardWidth, 200, panelBg, false)
	vector.StrokeRect(screen, float32(x), float32(y), cardWidth, 200, 1, panelBorder, false)

	if len(g.offer.Commands) == 0 || g.offer.Actor == nil {
		g.drawText(screen, "waiting...", x+12, y+22, textDim)
		return
	}
	who := "auto"
	if g.humanTurn() {
		who = "you"
	}
	g.drawText(screen, fmt.Sprintf("%s  [%s]  (%s)", g.offer.Actor.Name(), g.offer.Menu, who), x+12, y+22, textBright)
	for i, cmd := range g.offer.Commands {
		label := cmd.Label()
		if cmd.Kind() == battle.KindConfirmPending {
			if t := g.selectedTarget(); t != nil {
				label += " -> " + t.Name()
			}
		}
		col := textDim
		prefix := "  "
		if i == g.cursor && g.humanTurn() {
			col, prefix = textBright, "> "
		}
		g.drawText(screen, prefix+label, x+12, y+48+i*20, col)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	speed := "PAUSED"
	if g.simSpeed > 0 {
		speed = fmt.Sprintf("%gx", g.simSpeed)
	}
	auto := "off"
	if g.autoPlayers {
		auto = "on"
	}
	lines := []string{
		fmt.Sprintf("SPEED: %s  P=pause  ,/. speed", speed),
		"Up/Down=choose  Enter=confirm  Bksp=undo",
		"Tab/Left/Right=target  C=copy log",
		fmt.Sprintf("A=autoplay (%s)  R=rematch  H=hide", auto),
	}
	const lineH, charW, pad = 16, 6, 6
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	w := float32(maxLen*charW + pad*2)
	h := float32(len(lines)*lineH + pad*2)
	bx := float32(arenaWidth) - w - columnPad
	by := float32(menuTop)
	vector.FillRect(screen, bx, by, w, h, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, w, h, 1, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), int(bx)+pad, int(by)+pad)
}

// drawText draws s with its baseline at about y.
func (g *Game) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y-13))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}
