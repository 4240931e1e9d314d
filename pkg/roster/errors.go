package roster

import (
	"errors"
	"fmt"
	"strings"
)

// 名册错误类型
//
// 所有错误都是非致命的：操作返回错误时名册状态保持不变。
// 调用方使用 errors.Is 判断具体类型，使用 errors.As 取出 *Error 获取出错条目。
var (
	// ErrDuplicateUnitID 输入中出现重复的单位ID
	ErrDuplicateUnitID = errors.New("duplicate unit id")
	// ErrCapacityExceeded 超出名册容量或棋盘格子数
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrUnknownUnitID 引用的单位ID不在名册中
	ErrUnknownUnitID = errors.New("unknown unit id")
	// ErrZoneMismatch 单位不在操作期望的区域
	ErrZoneMismatch = errors.New("zone mismatch")
	// ErrCountMismatch 批量输入的条目数与区域人数不符
	ErrCountMismatch = errors.New("count mismatch")
	// ErrOutOfBounds 坐标超出棋盘范围
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrCellConflict 两个布置指向同一格子
	ErrCellConflict = errors.New("cell conflict")
	// ErrIncompleteCoverage 严格布置批次遗漏了某个已部署单位
	ErrIncompleteCoverage = errors.New("incomplete coverage")
	// ErrInvalidZone 区域取值不合法
	ErrInvalidZone = errors.New("invalid zone")
)

// 操作名称，用于错误信息和监控标签
const (
	OpLoad                  = "load"
	OpSetZoneOrder          = "set_zone_order"
	OpSetDeployedPlacements = "set_deployed_placements"
)

// reasons 错误类型到监控标签的映射
var reasons = map[error]string{
	ErrDuplicateUnitID:    "duplicate_unit_id",
	ErrCapacityExceeded:   "capacity_exceeded",
	ErrUnknownUnitID:      "unknown_unit_id",
	ErrZoneMismatch:       "zone_mismatch",
	ErrCountMismatch:      "count_mismatch",
	ErrOutOfBounds:        "out_of_bounds",
	ErrCellConflict:       "cell_conflict",
	ErrIncompleteCoverage: "incomplete_coverage",
	ErrInvalidZone:        "invalid_zone",
}

// Error 描述一次被拒绝的修改操作
type Error struct {
	Op    string // 操作名称（OpLoad 等）
	Kind  error  // 错误类型（ErrCellConflict 等）
	Index int    // 出错条目在输入中的下标，-1 表示与具体条目无关
	Unit  UnitID // 出错条目的单位ID（Index >= 0 或覆盖不完整时有效）
	X, Y  int    // 出错条目的坐标（仅布置操作有效）
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "roster: %s: %v", e.Op, e.Kind)
	switch {
	case e.Op == OpSetDeployedPlacements && e.Index >= 0:
		fmt.Fprintf(&b, " (entry %d: unit %d at (%d,%d))", e.Index, e.Unit, e.X, e.Y)
	case e.Index >= 0:
		fmt.Fprintf(&b, " (entry %d: unit %d)", e.Index, e.Unit)
	case errors.Is(e.Kind, ErrIncompleteCoverage):
		fmt.Fprintf(&b, " (unit %d not placed)", e.Unit)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Reason 返回错误对应的监控标签，如 "cell_conflict"
// 非名册错误返回 "other"，nil 返回空字符串
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for kind, reason := range reasons {
		if errors.Is(err, kind) {
			return reason
		}
	}
	return "other"
}

func opError(op string, kind error) *Error {
	return &Error{Op: op, Kind: kind, Index: noIndex}
}

func entryError(op string, kind error, index int, unit UnitID) *Error {
	return &Error{Op: op, Kind: kind, Index: index, Unit: unit}
}

func placementError(kind error, index int, p Placement) *Error {
	return &Error{Op: OpSetDeployedPlacements, Kind: kind, Index: index, Unit: p.UnitID, X: p.X, Y: p.Y}
}
