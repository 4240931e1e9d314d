// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的单位模板与名册文件。
//
// 未初始化、或路径不在 "data/" 之下、或嵌入文件系统中找不到该文件时，
// 回退到本地文件系统读取（命令行工具与测试使用任意路径）。
package embedded

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// embeddedPath 返回路径在嵌入文件系统中的形式，不属于嵌入范围时返回 false
func embeddedPath(path string) (string, bool) {
	if !initialized {
		return "", false
	}
	// 标准化路径分隔符为正斜杠，并移除可能的 "./" 前缀
	p := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(p, "data/") {
		return "", false
	}
	return p, true
}

// ReadFile 读取文件内容，优先使用嵌入文件系统
func ReadFile(path string) ([]byte, error) {
	if p, ok := embeddedPath(path); ok {
		data, err := fs.ReadFile(dataFS, p)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return data, err
		}
	}
	return os.ReadFile(path)
}

// ReadDir 读取目录内容，优先使用嵌入文件系统
func ReadDir(path string) ([]fs.DirEntry, error) {
	if p, ok := embeddedPath(path); ok {
		entries, err := fs.ReadDir(dataFS, strings.TrimSuffix(p, "/"))
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return entries, err
		}
	}
	return os.ReadDir(path)
}

// Exists 检查文件是否存在（嵌入文件系统或本地文件系统）
func Exists(path string) bool {
	if p, ok := embeddedPath(path); ok {
		if _, err := fs.Stat(dataFS, p); err == nil {
			return true
		}
	}
	_, err := os.Stat(path)
	return err == nil
}
