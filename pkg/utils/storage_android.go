//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前准备存档目录
//
// Android 上 gdata 写入 /data/data/{package}/ 下的子目录，但不会预先创建它，
// 首次保存名册前必须确保目录存在且可写。
func EnsureStorageDir() error {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("detect android package: %w", err)
	}
	// cmdline 以 NUL 分隔，第一段就是包名
	pkg := string(bytes.TrimRight(bytes.SplitN(cmdline, []byte{0}, 2)[0], "\n"))
	if pkg == "" {
		return fmt.Errorf("detect android package: empty /proc/self/cmdline")
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}
