// Package roster 提供玩家单位名册（Unit Record Store）
//
// 名册以固定容量的列式数组（SOA）保存玩家拥有的全部单位，并维护三组相互一致的索引：
//   - 单位ID → 稠密索引（dense index）
//   - 区域（Zone）→ 有序成员列表（即显示顺序）
//   - 棋盘格子 ↔ 占用者（仅 Deployed 区域的单位）
//
// 所有批量修改都是"先完整校验、再一次性提交"：要么全部生效，要么状态完全不变。
//
// 并发说明：
//   - Store 是单线程、单所有者的内存索引，内部不加锁
//   - 需要跨 goroutine 访问时，由调用方在外部串行化（例如一把 sync.Mutex）
//   - 迭代器是实时视图，仅在下一次修改操作之前有效
package roster

import (
	"fmt"
	"strings"
)

// 名册与棋盘尺寸常量
const (
	// Capacity 名册固定容量（单位行数上限）
	Capacity = 48

	// BoardWidth 部署棋盘的列数
	BoardWidth = 9

	// BoardHeight 部署棋盘的行数
	BoardHeight = 4

	// BoardCells 部署棋盘格子总数
	BoardCells = BoardWidth * BoardHeight // 36

	// noIndex 表示"空格子"或"未布置位置"
	noIndex = -1
)

// UnitID 单位的稳定标识符，由调用方分配，名册内唯一
type UnitID int

// UnitTypeID 单位模板ID，对名册不透明
type UnitTypeID int

// Zone 单位所在的逻辑区域
type Zone uint8

const (
	// ZoneStaging 备战区
	ZoneStaging Zone = iota
	// ZoneDeployed 已部署（上阵）区，只有该区域的单位可以占用棋盘格子
	ZoneDeployed
	// ZoneOverflow 溢出区（备战区放不下的单位）
	ZoneOverflow
	// ZoneShop 商店区
	ZoneShop

	// ZoneCount 区域数量
	ZoneCount = 4
)

var zoneNames = [ZoneCount]string{"staging", "deployed", "overflow", "shop"}

// Valid 检查区域值是否在四个合法取值之内
func (z Zone) Valid() bool {
	return z < ZoneCount
}

// String 返回区域的小写名称，如 "deployed"
func (z Zone) String() string {
	if !z.Valid() {
		return fmt.Sprintf("zone(%d)", uint8(z))
	}
	return zoneNames[z]
}

// ParseZone 将区域名称（大小写不敏感）解析为 Zone
//
// 参数:
//   - name: 区域名称，如 "Staging"、"deployed"
//
// 返回:
//   - Zone: 解析结果
//   - error: 名称未知时返回 ErrInvalidZone
func ParseZone(name string) (Zone, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, zn := range zoneNames {
		if zn == n {
			return Zone(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidZone, name)
}

// Zones 返回全部四个区域（按枚举顺序）
func Zones() [ZoneCount]Zone {
	return [ZoneCount]Zone{ZoneStaging, ZoneDeployed, ZoneOverflow, ZoneShop}
}

// Row 名册中的一行
type Row struct {
	UnitID     UnitID
	UnitTypeID UnitTypeID
	Zone       Zone
}

// Placement 一个已部署单位的格子坐标
type Placement struct {
	UnitID UnitID
	X, Y   int
}

// cellIndex 将 (x, y) 转换为格子索引，越界返回 false
func cellIndex(x, y int) (int, bool) {
	if uint(x) >= BoardWidth || uint(y) >= BoardHeight {
		return noIndex, false
	}
	return y*BoardWidth + x, true
}

// cellXY 将格子索引还原为 (x, y)
func cellXY(cell int) (int, int) {
	return cell % BoardWidth, cell / BoardWidth
}

// InBounds 检查 (x, y) 是否位于棋盘范围内
func InBounds(x, y int) bool {
	_, ok := cellIndex(x, y)
	return ok
}
