//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.roster -o build/android/roster.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Roster.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/roster/pkg/app"
	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 移动端没有环境变量可用，直接使用默认配置
	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	cfg.Verbose = true
	cfg.MetricsAddr = ""

	rosterApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("部署界面初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(rosterApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
