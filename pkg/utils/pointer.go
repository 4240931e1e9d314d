package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEvent 一帧内的指针事件（鼠标左键或第一个触点）
type PointerEvent struct {
	Pressed  bool // 本帧刚按下
	Released bool // 本帧刚释放
	X, Y     int  // 事件位置（屏幕坐标）
}

// Pointer 统一鼠标与触摸输入
//
// 触摸释放时 ebiten 已经拿不到触点位置，所以这里记住最后一次触摸位置，
// 释放事件使用它作为坐标。
type Pointer struct {
	touchID    ebiten.TouchID
	touching   bool
	lastTouchX int
	lastTouchY int
}

// Poll 读取本帧的指针事件，每个 tick 调用一次
// 触摸优先于鼠标；多点触摸时只跟踪最先按下的触点
func (p *Pointer) Poll() PointerEvent {
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			return PointerEvent{Released: true, X: p.lastTouchX, Y: p.lastTouchY}
		}
		p.lastTouchX, p.lastTouchY = ebiten.TouchPosition(p.touchID)
		return PointerEvent{X: p.lastTouchX, Y: p.lastTouchY}
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.touchID = ids[0]
		p.touching = true
		p.lastTouchX, p.lastTouchY = ebiten.TouchPosition(p.touchID)
		return PointerEvent{Pressed: true, X: p.lastTouchX, Y: p.lastTouchY}
	}

	x, y := ebiten.CursorPosition()
	return PointerEvent{
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		X:        x,
		Y:        y,
	}
}

// Touching 返回是否有被跟踪的触点
func (p *Pointer) Touching() bool {
	return p.touching
}
