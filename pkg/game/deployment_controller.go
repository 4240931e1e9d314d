package game

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/decker502/roster/pkg/roster"
	"github.com/decker502/roster/pkg/utils"
)

// ErrNotDragging 当前没有正在拖拽的单位
var ErrNotDragging = errors.New("no unit is being dragged")

// MutationObserver 接收每一次名册修改的结果（成功时 err 为 nil）
// telemetry.Collector 实现了该接口
type MutationObserver interface {
	Observe(op string, err error)
}

// DeploymentController 部署棋盘交互控制器
//
// 负责把拖拽、自动布置、区域内排序等交互转换为完整的名册批量修改。
// 名册只接受完整覆盖的布置批次，因此每次移动都基于当前全部布置重新构造批次。
type DeploymentController struct {
	store    *roster.Store
	observer MutationObserver

	dragging bool
	dragID   roster.UnitID
}

// NewDeploymentController 创建部署控制器
//
// 参数：
//   - store: 被操作的名册
//   - observer: 修改结果观察者，可为 nil
func NewDeploymentController(store *roster.Store, observer MutationObserver) *DeploymentController {
	return &DeploymentController{store: store, observer: observer}
}

// BeginDrag 从棋盘格子 (x, y) 开始拖拽
// 格子为空或越界时返回 false
func (dc *DeploymentController) BeginDrag(x, y int) bool {
	id, ok := dc.store.UnitAt(x, y)
	if !ok {
		return false
	}
	dc.dragging = true
	dc.dragID = id
	return true
}

// BeginDragUnit 按单位ID开始拖拽（例如从 Deployed 面板拖出）
// 只有已布置的单位可以拖拽
func (dc *DeploymentController) BeginDragUnit(id roster.UnitID) bool {
	if _, _, ok := dc.store.PositionOf(id); !ok {
		return false
	}
	dc.dragging = true
	dc.dragID = id
	return true
}

// Dragging 返回当前拖拽中的单位
func (dc *DeploymentController) Dragging() (roster.UnitID, bool) {
	return dc.dragID, dc.dragging
}

// Cancel 取消当前拖拽，名册不变
func (dc *DeploymentController) Cancel() {
	dc.dragging = false
	dc.dragID = 0
}

// Drop 将拖拽中的单位放到格子 (x, y)
//
// 目标格子被其他单位占用时两者交换位置。新批次先经 ValidatePlacements 预检，
// 通过后再提交；被拒绝时记录日志并返回错误，名册保持不变。
// 无论成功与否，拖拽状态都会结束。
func (dc *DeploymentController) Drop(x, y int) error {
	if !dc.dragging {
		return ErrNotDragging
	}
	id := dc.dragID
	dc.Cancel()

	placements := dc.store.Placements()
	from := slices.IndexFunc(placements, func(p roster.Placement) bool { return p.UnitID == id })
	if from < 0 {
		// 拖拽开始后名册被重新加载
		return fmt.Errorf("unit %d is no longer placed", id)
	}
	src := placements[from]
	if src.X == x && src.Y == y {
		return nil
	}

	if occupant, ok := dc.store.UnitAt(x, y); ok {
		to := slices.IndexFunc(placements, func(p roster.Placement) bool { return p.UnitID == occupant })
		placements[to].X, placements[to].Y = src.X, src.Y
	}
	placements[from].X, placements[from].Y = x, y

	if err := dc.store.ValidatePlacements(placements); err != nil {
		dc.observe(roster.OpSetDeployedPlacements, err)
		log.Printf("[DeploymentController] Drop of unit %d at (%d,%d) rejected: %v", id, x, y, err)
		return err
	}
	return dc.commit(placements)
}

// DropAtWorld 将拖拽中的单位放到世界平面坐标 (wx, wz) 所在的格子
//
// 坐标落在棋盘外时结束拖拽并返回 roster.ErrOutOfBounds，名册不变。
func (dc *DeploymentController) DropAtWorld(wx, wz float64) error {
	x, y, ok := utils.WorldToCell(wx, wz)
	if !ok {
		if !dc.dragging {
			return ErrNotDragging
		}
		id := dc.dragID
		dc.Cancel()
		log.Printf("[DeploymentController] Drop of unit %d at world (%.1f,%.1f) is off the board", id, wx, wz)
		return fmt.Errorf("drop at world (%.1f,%.1f): %w", wx, wz, roster.ErrOutOfBounds)
	}
	return dc.Drop(x, y)
}

// AutoPlace 为所有未布置的已部署单位分配格子
//
// 已有布置保持不变；未布置单位按 Deployed 区域显示顺序依次放入
// 行优先顺序的第一个空闲格子。全部已布置时不修改名册。
func (dc *DeploymentController) AutoPlace() error {
	placements := dc.store.Placements()
	if len(placements) == dc.store.CountInZone(roster.ZoneDeployed) {
		return nil
	}

	var used [roster.BoardCells]bool
	for _, p := range placements {
		used[p.Y*roster.BoardWidth+p.X] = true
	}

	next := 0
	for id := range dc.store.UnitsInZone(roster.ZoneDeployed) {
		if _, _, placed := dc.store.PositionOf(id); placed {
			continue
		}
		for next < roster.BoardCells && used[next] {
			next++
		}
		if next == roster.BoardCells {
			// 格子不足，交给名册报告 ErrCapacityExceeded
			placements = append(placements, roster.Placement{UnitID: id, X: -1, Y: -1})
			continue
		}
		used[next] = true
		placements = append(placements, roster.Placement{UnitID: id, X: next % roster.BoardWidth, Y: next / roster.BoardWidth})
	}

	if err := dc.commit(placements); err != nil {
		return err
	}
	log.Printf("[DeploymentController] Auto-placed %d deployed units", len(placements))
	return nil
}

// MoveInZone 将单位移动到区域显示顺序中的 newIndex 位置
//
// newIndex 超出范围时被限制到首尾。
func (dc *DeploymentController) MoveInZone(zone roster.Zone, id roster.UnitID, newIndex int) error {
	order := dc.store.ZoneOrder(zone)
	from := slices.Index(order, id)
	if from < 0 {
		_, actual, ok := dc.store.Lookup(id)
		if !ok {
			return fmt.Errorf("move unit %d: %w", id, roster.ErrUnknownUnitID)
		}
		return fmt.Errorf("move unit %d: in zone %s, not %s: %w", id, actual, zone, roster.ErrZoneMismatch)
	}

	newIndex = min(max(newIndex, 0), len(order)-1)
	if newIndex == from {
		return nil
	}
	order = slices.Delete(order, from, from+1)
	order = slices.Insert(order, newIndex, id)

	err := dc.store.SetZoneOrder(zone, order)
	dc.observe(roster.OpSetZoneOrder, err)
	if err != nil {
		log.Printf("[DeploymentController] Reorder of %s rejected: %v", zone, err)
	}
	return err
}

func (dc *DeploymentController) commit(placements []roster.Placement) error {
	err := dc.store.SetDeployedPlacements(placements)
	dc.observe(roster.OpSetDeployedPlacements, err)
	if err != nil {
		log.Printf("[DeploymentController] Placement batch rejected: %v", err)
	}
	return err
}

func (dc *DeploymentController) observe(op string, err error) {
	if dc.observer != nil {
		dc.observer.Observe(op, err)
	}
}
