package utils

import (
	"math"

	"github.com/decker502/roster/pkg/roster"
)

// WorldBlockSize 世界坐标中一个棋盘块的边长
// 块编号从 1 开始，第 n 块的中心位于 n*WorldBlockSize
const WorldBlockSize = 100.0

// ScreenToCell 将屏幕坐标转换为部署棋盘格子坐标
// 参数:
//   - px, py: 屏幕坐标（如鼠标位置）
//   - originX, originY: 棋盘左上角的屏幕坐标
//   - cellW, cellH: 格子尺寸
//
// 返回:
//   - x: 列索引 (0-8)
//   - y: 行索引 (0-3)
//   - ok: 是否落在棋盘范围内
func ScreenToCell(px, py, originX, originY, cellW, cellH float64) (x, y int, ok bool) {
	endX := originX + float64(roster.BoardWidth)*cellW
	endY := originY + float64(roster.BoardHeight)*cellH
	if px < originX || px >= endX || py < originY || py >= endY {
		return 0, 0, false
	}

	x = int((px - originX) / cellW)
	y = int((py - originY) / cellH)

	// 边界检查（防止浮点数计算误差导致的越界）
	x = min(max(x, 0), roster.BoardWidth-1)
	y = min(max(y, 0), roster.BoardHeight-1)

	return x, y, true
}

// CellToScreen 将格子坐标转换为格子中心的屏幕坐标
func CellToScreen(x, y int, originX, originY, cellW, cellH float64) (centerX, centerY float64) {
	centerX = originX + float64(x)*cellW + cellW/2
	centerY = originY + float64(y)*cellH + cellH/2
	return centerX, centerY
}

// WorldToCell 将世界平面坐标 (wx, wz) 转换为棋盘格子坐标
//
// 世界坐标按 WorldBlockSize 四舍五入到块编号（从 1 开始），
// 再平移为从 0 开始的格子坐标。落在棋盘外时 ok 为 false。
func WorldToCell(wx, wz float64) (x, y int, ok bool) {
	bx := int(math.Floor((wx + WorldBlockSize/2) / WorldBlockSize))
	bz := int(math.Floor((wz + WorldBlockSize/2) / WorldBlockSize))
	x, y = bx-1, bz-1
	if !roster.InBounds(x, y) {
		return 0, 0, false
	}
	return x, y, true
}
