package game

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/roster"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrProfileNotFound 指定名称的名册存档不存在
var ErrProfileNotFound = errors.New("roster profile not found")

// 存储路径常量
const (
	rostersObject = "rosters"
	indexProperty = "_index"
)

// ProfileManager 名册存档管理器
// 负责把 roster.Store 的快照按存档名保存到 gdata，并在需要时恢复
//
// 每个存档是 rosters 对象下的一个属性，内容为名册文件格式的 YAML（config.RosterFile）。
// 已知存档名列表单独保存在 _index 属性中。
type ProfileManager struct {
	gdataManager *gdata.Manager    // gdata 跨平台存储管理器，可为 nil（降级模式）
	memory       map[string][]byte // 降级模式下的内存存档
	profiles     []string          // 已知存档名（有序）
}

// NewProfileManager 创建名册存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，存档只保存在内存中）
//
// 返回：
//   - *ProfileManager: 存档管理器实例
func NewProfileManager(gdataManager *gdata.Manager) *ProfileManager {
	pm := &ProfileManager{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
	if err := pm.loadIndex(); err != nil {
		// 索引损坏不是致命错误，从空列表开始
		log.Printf("[ProfileManager] Warning: Failed to load profile index: %v", err)
	}
	return pm
}

// validProfileName 存档名只允许字母、数字、下划线和连字符
func validProfileName(name string) error {
	if name == "" || name == indexProperty {
		return fmt.Errorf("invalid profile name %q", name)
	}
	for _, r := range name {
		ok := r == '_' || r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !ok {
			return fmt.Errorf("invalid profile name %q", name)
		}
	}
	return nil
}

// SaveRoster 保存名册快照
//
// 参数：
//   - profile: 存档名
//   - s: 要保存的名册
//
// 返回：
//   - error: 存档名非法、序列化或保存失败时返回错误
func (pm *ProfileManager) SaveRoster(profile string, s *roster.Store) error {
	if err := validProfileName(profile); err != nil {
		return err
	}

	data, err := config.SnapshotRoster(s).Marshal()
	if err != nil {
		return err
	}

	if err := pm.put(profile, data); err != nil {
		return fmt.Errorf("failed to save roster %s: %w", profile, err)
	}

	if !slices.Contains(pm.profiles, profile) {
		pm.profiles = append(pm.profiles, profile)
		slices.Sort(pm.profiles)
		if err := pm.saveIndex(); err != nil {
			log.Printf("[ProfileManager] Warning: Failed to save profile index: %v", err)
		}
	}

	log.Printf("[ProfileManager] Saved roster %s (%d units, %d placed)", profile, s.Count(), s.PlacedCount())
	return nil
}

// LoadRoster 恢复名册存档到 s
//
// 恢复通过 config.RosterFile.Apply 完成，失败时返回的错误可用 errors.Is 判断
// roster 包的错误类型。存档不存在时返回 ErrProfileNotFound。
// 任何失败都不会改动 s。
func (pm *ProfileManager) LoadRoster(profile string, s *roster.Store) error {
	if err := validProfileName(profile); err != nil {
		return err
	}

	data, err := pm.get(profile)
	if err != nil {
		return err
	}

	rf, err := config.ParseRoster(data)
	if err != nil {
		return fmt.Errorf("corrupt roster profile %s: %w", profile, err)
	}
	// 先恢复到临时名册，全部成功后再整体替换
	restored := roster.NewStore()
	if err := rf.Apply(restored); err != nil {
		log.Printf("[ProfileManager] Roster %s rejected: %v", profile, err)
		return fmt.Errorf("failed to restore roster %s: %w", profile, err)
	}
	*s = *restored

	log.Printf("[ProfileManager] Loaded roster %s (%d units)", profile, s.Count())
	return nil
}

// HasRoster 检查存档是否存在
func (pm *ProfileManager) HasRoster(profile string) bool {
	if validProfileName(profile) != nil {
		return false
	}
	if pm.gdataManager == nil {
		_, ok := pm.memory[profile]
		return ok
	}
	return pm.gdataManager.ObjectPropExists(rostersObject, profile)
}

// Profiles 返回已知存档名（升序）
func (pm *ProfileManager) Profiles() []string {
	return slices.Clone(pm.profiles)
}

func (pm *ProfileManager) put(prop string, data []byte) error {
	// 降级模式：仅内存保存
	if pm.gdataManager == nil {
		pm.memory[prop] = data
		return nil
	}
	return pm.gdataManager.SaveObjectProp(rostersObject, prop, data)
}

func (pm *ProfileManager) get(prop string) ([]byte, error) {
	if pm.gdataManager == nil {
		data, ok := pm.memory[prop]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, prop)
		}
		return data, nil
	}
	if !pm.gdataManager.ObjectPropExists(rostersObject, prop) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, prop)
	}
	data, err := pm.gdataManager.LoadObjectProp(rostersObject, prop)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", prop, err)
	}
	return data, nil
}

func (pm *ProfileManager) loadIndex() error {
	data, err := pm.get(indexProperty)
	if errors.Is(err, ErrProfileNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("failed to unmarshal profile index: %w", err)
	}
	for _, n := range names {
		if validProfileName(n) == nil && !slices.Contains(pm.profiles, n) {
			pm.profiles = append(pm.profiles, n)
		}
	}
	slices.Sort(pm.profiles)
	return nil
}

func (pm *ProfileManager) saveIndex() error {
	data, err := yaml.Marshal(pm.profiles)
	if err != nil {
		return fmt.Errorf("failed to marshal profile index: %w", err)
	}
	return pm.put(indexProperty, data)
}
