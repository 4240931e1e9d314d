// Package app 提供部署界面的核心包装器
//
// 该包把名册、模板目录、存档管理器与部署控制器组装成一个 ebiten.Game：
// 左侧是 9×4 部署棋盘，右侧是四个区域面板。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/game"
	"github.com/decker502/roster/pkg/roster"
	"github.com/decker502/roster/pkg/tags"
	"github.com/decker502/roster/pkg/telemetry"
	"github.com/decker502/roster/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/basicfont"
)

// defaultProfile 未指定存档名时按 S 键保存使用的名称
const defaultProfile = "default"

// App 是部署界面的核心包装器，实现 ebiten.Game 接口
type App struct {
	mu         sync.Mutex // 串行化名册修改与指标采集
	store      *roster.Store
	catalog    *config.UnitCatalog
	controller *game.DeploymentController
	profiles   *game.ProfileManager
	collector  *telemetry.Collector

	profile  string
	verbose  bool
	autoSave bool // 移动端没有键盘，每次成功修改后自动保存
	face     text.Face
	status   string

	pointer            utils.Pointer
	pointerX, pointerY int

	// 面板内重新排序的拖拽状态（棋盘拖拽由 controller 管理）
	reordering  bool
	reorderZone roster.Zone
	reorderID   roster.UnitID

	metricsSrv *http.Server
}

// NewApp 创建并初始化部署界面
//
// 按顺序加载模板目录、名册文件、存档（若指定且存在），然后自动布置已部署单位。
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg config.AppConfig) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	catalog, err := config.LoadUnitCatalog(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("单位模板加载失败: %w", err)
	}
	if err := catalog.BakeAbilities(tags.NewRegistry(tags.DefaultOptions)); err != nil {
		return nil, fmt.Errorf("能力标签烘焙失败: %w", err)
	}

	rf, err := config.LoadRosterFile(cfg.Roster)
	if err != nil {
		return nil, fmt.Errorf("名册文件加载失败: %w", err)
	}
	store := roster.NewStore()
	if err := rf.Apply(store); err != nil {
		return nil, fmt.Errorf("名册文件被拒绝: %w", err)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: Failed to prepare storage dir: %v", err)
	}
	// gdata 打开失败时进入降级模式（存档仅保存在内存中）
	gdataManager, err := gdata.Open(gdata.Config{AppName: cfg.ProfileApp})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (profiles kept in memory)", err)
		gdataManager = nil
	}
	profiles := game.NewProfileManager(gdataManager)

	profile := cfg.Profile
	if profile == "" {
		profile = defaultProfile
	}
	if profiles.HasRoster(profile) {
		if err := profiles.LoadRoster(profile, store); err != nil {
			log.Printf("[App] Profile %s ignored: %v", profile, err)
		}
	}

	a := newApp(store, catalog, profiles, profile)
	a.verbose = cfg.Verbose
	a.autoSave = utils.IsMobile()

	if err := a.controller.AutoPlace(); err != nil {
		log.Printf("[App] Auto placement failed: %v", err)
		a.status = "auto placement failed: " + roster.Reason(err)
	}

	if cfg.MetricsAddr != "" {
		a.serveMetrics(cfg.MetricsAddr)
	}

	log.Printf("[App] Roster ready: %d units, %d placed, profile %s", store.Count(), store.PlacedCount(), profile)
	return a, nil
}

// newApp 组装 App（不做任何 IO）
func newApp(store *roster.Store, catalog *config.UnitCatalog, profiles *game.ProfileManager, profile string) *App {
	a := &App{
		store:    store,
		catalog:  catalog,
		profiles: profiles,
		profile:  profile,
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
	a.collector = telemetry.NewCollector(store, &a.mu)
	a.controller = game.NewDeploymentController(store, a.collector)
	return a
}

// serveMetrics 在后台启动 /metrics HTTP 端点
func (a *App) serveMetrics(addr string) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(a.collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.metricsSrv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Printf("[App] Serving metrics on %s/metrics", addr)
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[App] Metrics server stopped: %v", err)
		}
	}()
}

// Close 关闭指标服务
func (a *App) Close() error {
	if a.metricsSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return a.metricsSrv.Shutdown(ctx)
}

// Update 处理输入
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	ev := a.pointer.Poll()
	a.pointerX, a.pointerY = ev.X, ev.Y
	switch {
	case ev.Pressed:
		a.pressAt(float64(ev.X), float64(ev.Y))
	case ev.Released:
		a.releaseAt(float64(ev.X), float64(ev.Y))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.cancelDrag()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		a.autoPlace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.saveProfile()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copyBoard()
	}
	return nil
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Store 返回名册（只应在 Update 所在 goroutine 中使用）
func (a *App) Store() *roster.Store {
	return a.store
}

// Profiles 返回存档管理器
func (a *App) Profiles() *game.ProfileManager {
	return a.profiles
}

// SaveProfile 保存当前名册到启动时指定的存档
func (a *App) SaveProfile() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profiles.SaveRoster(a.profile, a.store)
}
