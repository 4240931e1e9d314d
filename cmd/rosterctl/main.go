// rosterctl 加载单位模板与名册文件，校验后打印区域顺序与部署棋盘
//
// 用法：
//
//	rosterctl -roster data/rosters/default.yaml -check
//	rosterctl -profile campaign -save     # 保存到 gdata 存档
//	rosterctl -profile campaign           # 从存档恢复（存在时）
//	rosterctl -metrics                    # 追加 Prometheus 文本格式指标
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/game"
	"github.com/decker502/roster/pkg/roster"
	"github.com/decker502/roster/pkg/tags"
	"github.com/decker502/roster/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/quasilyte/gdata/v2"
)

// options 命令行专用参数
type options struct {
	save    bool
	check   bool
	metrics bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行命令并返回退出码：0 成功，1 名册被拒绝或 IO 失败，2 参数错误
func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("rosterctl", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var opts options
	fs.BoolVar(&opts.save, "save", false, "save the roster to the gdata profile")
	fs.BoolVar(&opts.check, "check", false, "verify roster invariants after loading")
	fs.BoolVar(&opts.metrics, "metrics", false, "print roster metrics in Prometheus text format")

	cfg, err := config.ParseAppConfig(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(errOut, "rosterctl: %v\n", err)
		return 2
	}

	log.SetFlags(0)
	if cfg.Verbose {
		log.SetOutput(errOut)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := execute(cfg, opts, out); err != nil {
		fmt.Fprintf(errOut, "rosterctl: %v\n", err)
		return 1
	}
	return 0
}

func execute(cfg config.AppConfig, opts options, out io.Writer) error {
	if opts.save && cfg.Profile == "" {
		return errors.New("-save requires -profile")
	}

	catalog, err := config.LoadUnitCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	reg := tags.NewRegistry(tags.DefaultOptions)
	if err := catalog.BakeAbilities(reg); err != nil {
		return err
	}

	rf, err := config.LoadRosterFile(cfg.Roster)
	if err != nil {
		return err
	}

	store := roster.NewStore()
	collector := telemetry.NewCollector(store, nil)
	err = rf.Apply(store)
	collector.Observe(applyOp(err), err)
	if err != nil {
		return fmt.Errorf("roster %s rejected: %w", cfg.Roster, err)
	}
	log.Printf("[rosterctl] Applied %s: %d units", cfg.Roster, store.Count())

	if cfg.Profile != "" {
		profiles, err := openProfiles(cfg.ProfileApp)
		if err != nil {
			return err
		}
		switch {
		case opts.save:
			// 保存前先补全布置，使存档可直接显示
			if err := game.NewDeploymentController(store, collector).AutoPlace(); err != nil {
				return fmt.Errorf("auto place: %w", err)
			}
			if err := profiles.SaveRoster(cfg.Profile, store); err != nil {
				return err
			}
			fmt.Fprintf(out, "saved profile %s\n", cfg.Profile)
		case profiles.HasRoster(cfg.Profile):
			if err := profiles.LoadRoster(cfg.Profile, store); err != nil {
				return err
			}
			fmt.Fprintf(out, "restored profile %s\n", cfg.Profile)
		default:
			log.Printf("[rosterctl] Profile %s not found, using %s", cfg.Profile, cfg.Roster)
		}
	}

	if opts.check {
		if err := store.Check(); err != nil {
			return fmt.Errorf("invariant check failed: %w", err)
		}
		fmt.Fprintln(out, "check: ok")
	}

	fmt.Fprint(out, game.BoardText(store, catalog))

	if opts.metrics {
		if err := writeMetrics(out, collector); err != nil {
			return err
		}
	}
	return nil
}

// applyOp 返回名册文件应用失败时实际拒绝的操作名，成功时记为 load
func applyOp(err error) string {
	var rerr *roster.Error
	if errors.As(err, &rerr) {
		return rerr.Op
	}
	return roster.OpLoad
}

func openProfiles(appName string) (*game.ProfileManager, error) {
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open profile storage: %w", err)
	}
	return game.NewProfileManager(gdataManager), nil
}

// writeMetrics 以 Prometheus 文本格式输出采集器的全部指标
func writeMetrics(out io.Writer, collector prometheus.Collector) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collector); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
