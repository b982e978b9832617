package game

import "github.com/hajimehoshi/ebiten/v2"

var watchedKeys = []ebiten.Key{
	ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyBackspace, ebiten.KeyTab,
	ebiten.KeyC, ebiten.KeyR, ebiten.KeyA, ebiten.KeyH,
	ebiten.KeyP, ebiten.KeyComma, ebiten.KeyPeriod,
}

var speeds = []float64{0, 0.5, 1, 2, 4}

// handleInput dispatches edge-triggered keypresses.
func (g *Game) handleInput() error {
	currentKeys := make(map[ebiten.Key]bool, len(watchedKeys))
	var pressed []ebiten.Key
	for _, k := range watchedKeys {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		if currentKeys[k] && !g.prevKeys[k] {
			pressed = append(pressed, k)
		}
	}
	g.prevKeys = currentKeys
	for _, k := range pressed {
		if err := g.press(k); err != nil {
			return err
		}
	}
	return nil
}

// press applies one key.
func (g *Game) press(k ebiten.Key) error {
	switch k {
	case ebiten.KeyArrowUp:
		g.moveCursor(-1)
	case ebiten.KeyArrowDown:
		g.moveCursor(1)
	case ebiten.KeyArrowLeft:
		g.cycleTarget(-1)
	case ebiten.KeyArrowRight, ebiten.KeyTab:
		g.cycleTarget(1)
	case ebiten.KeyEnter, ebiten.KeySpace:
		g.confirm()
	case ebiten.KeyBackspace:
		g.undo()
	case ebiten.KeyC:
		g.copyLog()
	case ebiten.KeyR:
		return g.restart()
	case ebiten.KeyA:
		g.autoPlayers = !g.autoPlayers
	case ebiten.KeyH:
		g.showHUD = !g.showHUD
	case ebiten.KeyP:
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	case ebiten.KeyComma:
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	case ebiten.KeyPeriod:
		for _, s := range speeds {
			if s > g.simSpeed {
				g.simSpeed = s
				break
			}
		}
	}
	return nil
}
