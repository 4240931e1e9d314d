package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/game"
	"github.com/decker502/roster/pkg/roster"
	"github.com/decker502/roster/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 24, A: 255}
	cellColor       = color.RGBA{R: 52, G: 84, B: 52, A: 255}
	cellAltColor    = color.RGBA{R: 60, G: 96, B: 60, A: 255}
	gridLineColor   = color.RGBA{R: 20, G: 40, B: 20, A: 255}
	unitColor       = color.RGBA{R: 70, G: 110, B: 170, A: 255}
	dragColor       = color.RGBA{R: 220, G: 180, B: 60, A: 255}
	panelColor      = color.RGBA{R: 36, G: 40, B: 48, A: 255}
	labelColor      = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// Draw 绘制棋盘、区域面板与状态栏
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	dragID, dragging := a.controller.Dragging()

	a.drawBoard(screen, dragID, dragging)
	for i, zone := range roster.Zones() {
		a.drawPanel(screen, i, zone, dragID, dragging)
	}

	if dragging {
		px, py := float32(a.pointerX), float32(a.pointerY)
		vector.StrokeRect(screen, px-config.CellWidth/2, py-config.CellHeight/2,
			config.CellWidth, config.CellHeight, 2, dragColor, false)
	}

	help := fmt.Sprintf("drag to move/swap | A auto place | S save [%s] | C copy board | %d/%d units, %d placed",
		a.profile, a.store.Count(), roster.Capacity, a.store.PlacedCount())
	if a.autoSave {
		help = fmt.Sprintf("drag to move/swap | auto save [%s] | %d/%d units, %d placed",
			a.profile, a.store.Count(), roster.Capacity, a.store.PlacedCount())
	}
	ebitenutil.DebugPrintAt(screen, help, int(config.BoardOriginX), 10)
	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, a.status, int(config.BoardOriginX), 30)
	}
}

func (a *App) drawBoard(screen *ebiten.Image, dragID roster.UnitID, dragging bool) {
	for y := 0; y < roster.BoardHeight; y++ {
		for x := 0; x < roster.BoardWidth; x++ {
			cx := config.BoardOriginX + float64(x)*config.CellWidth
			cy := config.BoardOriginY + float64(y)*config.CellHeight
			fill := cellColor
			if (x+y)%2 == 1 {
				fill = cellAltColor
			}
			vector.FillRect(screen, float32(cx), float32(cy), config.CellWidth, config.CellHeight, fill, false)
			vector.StrokeRect(screen, float32(cx), float32(cy), config.CellWidth, config.CellHeight, 1, gridLineColor, false)
		}
	}

	for p := range a.store.DeployedPlacements() {
		centerX, centerY := utils.CellToScreen(p.X, p.Y, config.BoardOriginX, config.BoardOriginY, config.CellWidth, config.CellHeight)
		c := unitColor
		if dragging && p.UnitID == dragID {
			c = dragColor
		}
		vector.FillRect(screen, float32(centerX-30), float32(centerY-35), 60, 70, c, false)
		a.drawLabel(screen, a.unitLabel(p.UnitID), centerX-28, centerY-30)
		a.drawLabel(screen, fmt.Sprintf("#%d", p.UnitID), centerX-28, centerY+10)
	}
}

func (a *App) drawPanel(screen *ebiten.Image, index int, zone roster.Zone, dragID roster.UnitID, dragging bool) {
	ox, oy := config.CalculatePanelOrigin(index)
	vector.FillRect(screen, float32(ox), float32(oy-config.PanelTitleHeight),
		float32(config.PanelColumns)*config.PanelSlotSize, config.PanelHeight, panelColor, false)
	a.drawLabel(screen, fmt.Sprintf("%s (%d)", zone, a.store.CountInZone(zone)), ox+2, oy-config.PanelTitleHeight+3)

	for _, slot := range game.PanelLayout(a.store, zone, ox, oy, config.PanelSlotSize) {
		c := unitColor
		if (dragging && slot.UnitID == dragID) || (a.reordering && slot.UnitID == a.reorderID) {
			c = dragColor
		}
		vector.FillRect(screen, float32(slot.X+2), float32(slot.Y+2), config.PanelSlotSize-4, config.PanelSlotSize-4, c, false)
		a.drawLabel(screen, fmt.Sprintf("%d", slot.UnitID), slot.X+4, slot.Y+10)
	}
}

// unitLabel 返回单位模板名称（最多 8 个字符）
func (a *App) unitLabel(id roster.UnitID) string {
	typeID, _, _ := a.store.Lookup(id)
	name := []rune(a.catalog.Name(typeID))
	if len(name) > 8 {
		name = name[:8]
	}
	return string(name)
}

func (a *App) drawLabel(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(labelColor)
	text.Draw(screen, s, a.face, op)
}
