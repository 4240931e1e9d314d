//go:build !mobile

// Package mobile 的桌面端占位：绑定入口只在 -tags mobile 时编译
package mobile

// Dummy 让包在桌面端构建时也能被引用
func Dummy() {}
