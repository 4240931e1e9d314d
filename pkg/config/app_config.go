package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig 运行时配置（环境变量 + 命令行参数）
type AppConfig struct {
	Catalog     string `env:"ROSTER_CATALOG"      envDefault:"data/units"`
	Roster      string `env:"ROSTER_FILE"         envDefault:"data/rosters/default.yaml"`
	ProfileApp  string `env:"ROSTER_PROFILE_APP"  envDefault:"unit_roster"`
	Profile     string `env:"ROSTER_PROFILE"`
	Verbose     bool   `env:"ROSTER_VERBOSE"`
	MetricsAddr string `env:"ROSTER_METRICS_ADDR"`
}

// LoadAppConfig 从环境变量加载配置，未设置的字段使用默认值
func LoadAppConfig() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseAppConfig 先读取环境变量，再用命令行参数覆盖
//
// 参数：
//   - fs: 命令行参数集合，调用方可在此之前注册额外参数
//   - args: 命令行参数（不含程序名）
func ParseAppConfig(fs *flag.FlagSet, args []string) (AppConfig, error) {
	cfg, err := LoadAppConfig()
	if err != nil {
		return AppConfig{}, err
	}

	fs.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "unit template directory")
	fs.StringVar(&cfg.Roster, "roster", cfg.Roster, "roster YAML file")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "saved roster profile name")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /metrics on this address")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "enable verbose logging")
	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
