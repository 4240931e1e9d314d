package game

import (
	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/roster"
)

// PanelSlot 区域面板中一个单位槽位的位置
type PanelSlot struct {
	UnitID roster.UnitID
	Index  int     // 区域显示顺序中的位置
	X, Y   float64 // 槽位左上角的屏幕坐标
}

// PanelLayout 计算区域面板的槽位布局
//
// 参数：
//   - s: 名册
//   - zone: 区域
//   - originX, originY: 第一个槽位左上角坐标
//   - slotSize: 槽位边长
//
// 返回：
//   - []PanelSlot: 按区域显示顺序排列的槽位，每行 config.PanelColumns 个
func PanelLayout(s *roster.Store, zone roster.Zone, originX, originY, slotSize float64) []PanelSlot {
	slots := make([]PanelSlot, 0, s.CountInZone(zone))
	i := 0
	for id := range s.UnitsInZone(zone) {
		col, row := i%config.PanelColumns, i/config.PanelColumns
		slots = append(slots, PanelSlot{
			UnitID: id,
			Index:  i,
			X:      originX + float64(col)*slotSize,
			Y:      originY + float64(row)*slotSize,
		})
		i++
	}
	return slots
}

// SlotAt 返回包含屏幕坐标 (px, py) 的槽位
func SlotAt(slots []PanelSlot, px, py, slotSize float64) (PanelSlot, bool) {
	for _, slot := range slots {
		if px >= slot.X && px < slot.X+slotSize && py >= slot.Y && py < slot.Y+slotSize {
			return slot, true
		}
	}
	return PanelSlot{}, false
}
