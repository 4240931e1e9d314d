//go:build !mobile

package utils

import "testing"

// TestIsMobile 测试桌面端编译时 IsMobile() 只受调试环境变量控制
func TestIsMobile(t *testing.T) {
	t.Setenv("ROSTER_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("ROSTER_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should return true when emulation is enabled")
	}
}
