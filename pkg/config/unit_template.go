package config

import (
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"github.com/decker502/roster/pkg/embedded"
	"github.com/decker502/roster/pkg/roster"
	"github.com/decker502/roster/pkg/tags"
	"gopkg.in/yaml.v3"
)

// UnitTemplate 单位模板（每个模板一个 YAML 文件）
type UnitTemplate struct {
	ID           int    `yaml:"id"`           // 模板ID，即名册中的 UnitTypeID
	Name         string `yaml:"name"`         // 单位名称
	Rarity       int    `yaml:"rarity"`       // 稀有度
	Cost         int    `yaml:"cost"`         // 费用
	AttackMethod int    `yaml:"attackMethod"` // 攻击方式
	ActionMethod int    `yaml:"actionMethod"` // 行动方式

	HP  int `yaml:"hp"`  // 生命值
	Atk int `yaml:"atk"` // 攻击
	Def int `yaml:"def"` // 防御
	Res int `yaml:"res"` // 法抗

	AttackInterval float64 `yaml:"attackInterval"` // 攻击间隔（秒）
	AttackRadius   float64 `yaml:"attackRadius"`   // 攻击半径
	BlockRadius    float64 `yaml:"blockRadius"`    // 阻挡半径
	MoveSpeed      float64 `yaml:"moveSpeed"`      // 移动速度
	IsBlock        bool    `yaml:"isBlock"`        // 是否阻挡

	FixedAbility []string `yaml:"fixedAbility"` // 固有能力标签

	LifeDeduct  int `yaml:"lifeDeduct"`  // 漏怪扣除的生命
	NarrowTitle int `yaml:"narrowTitle"` // 窄标题编号

	innate tags.Mask // 由 BakeAbilities 烘焙
}

// TypeID 返回模板对应的名册单位模板ID
func (t *UnitTemplate) TypeID() roster.UnitTypeID {
	return roster.UnitTypeID(t.ID)
}

// Innate 返回烘焙后的固有能力位集合
func (t *UnitTemplate) Innate() tags.Mask {
	return t.innate
}

// ParseUnitTemplate 解析并校验单个单位模板
func ParseUnitTemplate(data []byte) (*UnitTemplate, error) {
	var tpl UnitTemplate
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse unit template YAML: %w", err)
	}
	if err := validateUnitTemplate(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// validateUnitTemplate 验证模板数值的合法性
func validateUnitTemplate(tpl *UnitTemplate) error {
	if tpl.ID <= 0 {
		return fmt.Errorf("unit template id must be positive, got %d", tpl.ID)
	}
	if tpl.HP < 0 {
		return fmt.Errorf("unit %d: hp cannot be negative, got %d", tpl.ID, tpl.HP)
	}
	if tpl.Cost < 0 {
		return fmt.Errorf("unit %d: cost cannot be negative, got %d", tpl.ID, tpl.Cost)
	}
	if tpl.AttackInterval < 0 || tpl.AttackRadius < 0 || tpl.BlockRadius < 0 || tpl.MoveSpeed < 0 {
		return fmt.Errorf("unit %d: interval, radius and speed cannot be negative", tpl.ID)
	}
	return nil
}

// UnitCatalog 单位模板目录（按模板ID索引）
type UnitCatalog struct {
	templates map[int]*UnitTemplate
	registry  *tags.Registry
}

// NewUnitCatalog 用给定模板构造目录，重复ID保留第一个
func NewUnitCatalog(templates ...*UnitTemplate) *UnitCatalog {
	c := &UnitCatalog{templates: make(map[int]*UnitTemplate, len(templates))}
	for _, tpl := range templates {
		c.add(tpl, "")
	}
	return c
}

func (c *UnitCatalog) add(tpl *UnitTemplate, source string) bool {
	if _, dup := c.templates[tpl.ID]; dup {
		log.Printf("[UnitCatalog] Duplicate unit id %d in %s, skipped", tpl.ID, source)
		return false
	}
	c.templates[tpl.ID] = tpl
	return true
}

// LoadUnitCatalog 从目录加载全部单位模板
//
// 参数：
//   - dir: 模板目录，每个 *.yaml 文件保存一个模板
//
// 返回：
//   - *UnitCatalog: 成功加载的模板目录
//   - error: 目录无法读取时返回错误
//
// 文件按名称排序后依次加载。无法解析、数值非法或ID重复的文件会被记录日志并跳过，
// 不影响其他模板。
func LoadUnitCatalog(dir string) (*UnitCatalog, error) {
	entries, err := embedded.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit catalog dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	c := NewUnitCatalog()
	for _, name := range names {
		file := filepath.Join(dir, name)
		data, err := embedded.ReadFile(file)
		if err != nil {
			log.Printf("[UnitCatalog] Failed to read %s: %v", file, err)
			continue
		}
		tpl, err := ParseUnitTemplate(data)
		if err != nil {
			log.Printf("[UnitCatalog] Skipping %s: %v", file, err)
			continue
		}
		c.add(tpl, file)
	}

	log.Printf("[UnitCatalog] Loaded %d unit templates from %s", c.Len(), dir)
	return c, nil
}

// Get 按模板ID获取模板
func (c *UnitCatalog) Get(typeID roster.UnitTypeID) (*UnitTemplate, bool) {
	tpl, ok := c.templates[int(typeID)]
	return tpl, ok
}

// Name 返回模板名称，未知模板返回 "#<id>"
func (c *UnitCatalog) Name(typeID roster.UnitTypeID) string {
	if c != nil {
		if tpl, ok := c.Get(typeID); ok && tpl.Name != "" {
			return tpl.Name
		}
	}
	return fmt.Sprintf("#%d", typeID)
}

// Len 返回模板数量
func (c *UnitCatalog) Len() int {
	return len(c.templates)
}

// IDs 返回升序排列的全部模板ID
func (c *UnitCatalog) IDs() []roster.UnitTypeID {
	ids := make([]roster.UnitTypeID, 0, len(c.templates))
	for id := range c.templates {
		ids = append(ids, roster.UnitTypeID(id))
	}
	slices.Sort(ids)
	return ids
}

// BakeAbilities 将每个模板的 FixedAbility 烘焙为位集合
//
// 模板按ID升序处理，未登记的标签按出现顺序追加到注册表。
// 注册表冻结时遇到新标签返回错误，已处理的模板保持烘焙结果。
func (c *UnitCatalog) BakeAbilities(reg *tags.Registry) error {
	if reg == nil {
		return fmt.Errorf("bake abilities: nil tag registry")
	}
	for _, id := range c.IDs() {
		tpl := c.templates[int(id)]
		var mask tags.Mask
		for _, name := range tpl.FixedAbility {
			if strings.TrimSpace(name) == "" {
				continue
			}
			if err := mask.SetTag(name, reg); err != nil {
				return fmt.Errorf("unit %d ability %q: %w", tpl.ID, name, err)
			}
		}
		tpl.innate = mask
	}
	c.registry = reg
	log.Printf("[UnitCatalog] Baked abilities for %d templates, registry size=%d", c.Len(), reg.Len())
	return nil
}

// HasInnate 检查模板是否具有某个固有能力（需先 BakeAbilities）
func (c *UnitCatalog) HasInnate(typeID roster.UnitTypeID, tag string) bool {
	tpl, ok := c.Get(typeID)
	if !ok {
		return false
	}
	return tpl.innate.HasTag(tag, c.registry)
}
