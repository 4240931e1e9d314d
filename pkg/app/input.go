package app

import (
	"log"

	"github.com/atotto/clipboard"
	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/game"
	"github.com/decker502/roster/pkg/roster"
	"github.com/decker502/roster/pkg/utils"
)

// boardCell 将屏幕坐标转换为棋盘格子
func boardCell(px, py float64) (int, int, bool) {
	return utils.ScreenToCell(px, py, config.BoardOriginX, config.BoardOriginY, config.CellWidth, config.CellHeight)
}

// panelSlot 查找屏幕坐标所在的区域面板槽位
func (a *App) panelSlot(px, py float64) (roster.Zone, game.PanelSlot, bool) {
	for i, zone := range roster.Zones() {
		ox, oy := config.CalculatePanelOrigin(i)
		slots := game.PanelLayout(a.store, zone, ox, oy, config.PanelSlotSize)
		if slot, ok := game.SlotAt(slots, px, py, config.PanelSlotSize); ok {
			return zone, slot, true
		}
	}
	return 0, game.PanelSlot{}, false
}

// pressAt 处理左键按下：棋盘格子或 Deployed 槽位开始布置拖拽，其他槽位开始排序拖拽
func (a *App) pressAt(px, py float64) {
	if x, y, ok := boardCell(px, py); ok {
		a.controller.BeginDrag(x, y)
		return
	}
	zone, slot, ok := a.panelSlot(px, py)
	if !ok {
		return
	}
	a.reordering = true
	a.reorderZone = zone
	a.reorderID = slot.UnitID
	if zone == roster.ZoneDeployed {
		a.controller.BeginDragUnit(slot.UnitID)
	}
}

// releaseAt 处理左键松开：放到棋盘格子上移动，放到同区域槽位上排序
func (a *App) releaseAt(px, py float64) {
	defer a.cancelDrag()

	if _, dragging := a.controller.Dragging(); dragging {
		if x, y, ok := boardCell(px, py); ok {
			a.mu.Lock()
			err := a.controller.Drop(x, y)
			a.mu.Unlock()
			a.report("move", err)
			return
		}
	}

	if !a.reordering {
		return
	}
	zone, slot, ok := a.panelSlot(px, py)
	if !ok || zone != a.reorderZone || slot.UnitID == a.reorderID {
		return
	}
	a.mu.Lock()
	err := a.controller.MoveInZone(zone, a.reorderID, slot.Index)
	a.mu.Unlock()
	a.report("reorder", err)
}

func (a *App) cancelDrag() {
	a.controller.Cancel()
	a.reordering = false
	a.reorderID = 0
}

func (a *App) autoPlace() {
	a.mu.Lock()
	err := a.controller.AutoPlace()
	a.mu.Unlock()
	a.report("auto place", err)
}

func (a *App) saveProfile() {
	err := a.SaveProfile()
	if err != nil {
		log.Printf("[App] Failed to save profile %s: %v", a.profile, err)
		a.status = "save failed"
		return
	}
	a.status = "saved profile " + a.profile
}

func (a *App) copyBoard() {
	if err := clipboard.WriteAll(game.BoardText(a.store, a.catalog)); err != nil {
		log.Printf("[App] Clipboard unavailable: %v", err)
		a.status = "clipboard unavailable"
		return
	}
	a.status = "board copied to clipboard"
}

// report 更新状态栏文本
func (a *App) report(action string, err error) {
	if err != nil {
		a.status = action + " rejected: " + roster.Reason(err)
		return
	}
	a.status = action + " ok"
	if a.autoSave {
		a.saveProfile()
	}
}
