package main

import (
	"log"

	"github.com/decker502/roster/pkg/app"
	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// 单位模板与默认名册打包进二进制，磁盘上的同名文件不再需要
	embedded.Init(dataFS)

	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	rosterApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("部署界面初始化失败: %v", err)
	}
	defer rosterApp.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("单位名册 - 部署")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(rosterApp); err != nil {
		log.Fatal(err)
	}
}
