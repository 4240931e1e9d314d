package config

import (
	"fmt"

	"github.com/decker502/roster/pkg/embedded"
	"github.com/decker502/roster/pkg/roster"
	"gopkg.in/yaml.v3"
)

// RosterEntry 名册文件中的一个单位
type RosterEntry struct {
	ID   int    `yaml:"id"`   // 单位ID
	Type int    `yaml:"type"` // 模板ID
	Zone string `yaml:"zone"` // 区域名称：staging | deployed | overflow | shop
}

// PlacementEntry 名册文件中的一个棋盘布置
type PlacementEntry struct {
	ID int `yaml:"id"`
	X  int `yaml:"x"`
	Y  int `yaml:"y"`
}

// RosterFile 名册文件结构
//
// Order 可选，键为区域名称，值为该区域的显示顺序；缺省时沿用 Units 中的出现顺序。
// Placements 可选，缺省时已部署单位保持未布置状态。
type RosterFile struct {
	Units      []RosterEntry    `yaml:"units"`
	Order      map[string][]int `yaml:"order,omitempty"`
	Placements []PlacementEntry `yaml:"placements,omitempty"`
}

// LoadRosterFile 从 YAML 文件加载名册
// 参数：
//
//	filepath - 名册文件路径（相对或绝对路径）
//
// 返回：
//
//	*RosterFile - 解析后的名册
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadRosterFile(filepath string) (*RosterFile, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", filepath, err)
	}

	rf, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("invalid roster file %s: %w", filepath, err)
	}
	return rf, nil
}

// ParseRoster 解析并校验名册 YAML
func ParseRoster(data []byte) (*RosterFile, error) {
	var rf RosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse roster YAML: %w", err)
	}
	if err := validateRosterFile(&rf); err != nil {
		return nil, err
	}
	return &rf, nil
}

// validateRosterFile 只校验文件层面的格式（区域名称）
// 唯一性、容量与布置规则由 roster.Store 在 Apply 时整体校验
func validateRosterFile(rf *RosterFile) error {
	if _, err := rf.Rows(); err != nil {
		return err
	}
	var seen [roster.ZoneCount]bool
	for name := range rf.Order {
		zone, err := roster.ParseZone(name)
		if err != nil {
			return fmt.Errorf("order: %w", err)
		}
		if seen[zone] {
			return fmt.Errorf("order: zone %s listed twice", zone)
		}
		seen[zone] = true
	}
	return nil
}

// Rows 将单位列表转换为名册行
func (rf *RosterFile) Rows() ([]roster.Row, error) {
	rows := make([]roster.Row, 0, len(rf.Units))
	for i, u := range rf.Units {
		zone, err := roster.ParseZone(u.Zone)
		if err != nil {
			return nil, fmt.Errorf("unit %d (entry %d): %w", u.ID, i, err)
		}
		rows = append(rows, roster.Row{
			UnitID:     roster.UnitID(u.ID),
			UnitTypeID: roster.UnitTypeID(u.Type),
			Zone:       zone,
		})
	}
	return rows, nil
}

// Apply 将名册文件应用到 Store
//
// 依次执行 Load、各区域 SetZoneOrder（按区域枚举顺序）、SetDeployedPlacements，
// 遇到第一个错误即返回。每一步本身是原子的，但已成功的步骤不会回滚。
func (rf *RosterFile) Apply(s *roster.Store) error {
	rows, err := rf.Rows()
	if err != nil {
		return err
	}
	if err := s.Load(rows); err != nil {
		return err
	}

	for _, zone := range roster.Zones() {
		order, ok := rf.orderFor(zone)
		if !ok {
			continue
		}
		ids := make([]roster.UnitID, len(order))
		for i, id := range order {
			ids[i] = roster.UnitID(id)
		}
		if err := s.SetZoneOrder(zone, ids); err != nil {
			return err
		}
	}

	if len(rf.Placements) == 0 {
		return nil
	}
	placements := make([]roster.Placement, len(rf.Placements))
	for i, p := range rf.Placements {
		placements[i] = roster.Placement{UnitID: roster.UnitID(p.ID), X: p.X, Y: p.Y}
	}
	return s.SetDeployedPlacements(placements)
}

// orderFor 查找区域的显示顺序，键名大小写不敏感
func (rf *RosterFile) orderFor(zone roster.Zone) ([]int, bool) {
	for name, ids := range rf.Order {
		if z, err := roster.ParseZone(name); err == nil && z == zone {
			return ids, true
		}
	}
	return nil, false
}

// SnapshotRoster 将 Store 当前状态导出为名册文件
//
// 单位按稠密顺序导出；只导出非空区域的显示顺序；布置按 Deployed 显示顺序导出。
func SnapshotRoster(s *roster.Store) *RosterFile {
	rf := &RosterFile{Units: make([]RosterEntry, 0, s.Count())}
	for row := range s.Rows() {
		rf.Units = append(rf.Units, RosterEntry{
			ID:   int(row.UnitID),
			Type: int(row.UnitTypeID),
			Zone: row.Zone.String(),
		})
	}
	for _, zone := range roster.Zones() {
		if s.CountInZone(zone) == 0 {
			continue
		}
		if rf.Order == nil {
			rf.Order = make(map[string][]int)
		}
		ids := make([]int, 0, s.CountInZone(zone))
		for id := range s.UnitsInZone(zone) {
			ids = append(ids, int(id))
		}
		rf.Order[zone.String()] = ids
	}
	for p := range s.DeployedPlacements() {
		rf.Placements = append(rf.Placements, PlacementEntry{ID: int(p.UnitID), X: p.X, Y: p.Y})
	}
	return rf
}

// Marshal 将名册文件编码为 YAML
func (rf *RosterFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roster: %w", err)
	}
	return data, nil
}
