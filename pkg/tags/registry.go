package tags

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFrozen 注册表已冻结，不允许追加新标签
	ErrFrozen = errors.New("tags: registry is frozen")
	// ErrEmptyName 标签名称为空
	ErrEmptyName = errors.New("tags: empty tag name")
)

// Options 注册表的名称规范化选项
type Options struct {
	IgnoreCase bool // 名称大小写不敏感
	TrimSpace  bool // 去除名称首尾空白
	Frozen     bool // 禁止追加
}

// DefaultOptions 默认选项：去除空白、大小写敏感、允许追加
var DefaultOptions = Options{TrimSpace: true}

// Registry 只追加的标签名称 ↔ 位索引映射
//
// 索引一旦分配便不再改变，已烘焙的 Mask 因此长期有效。
type Registry struct {
	opts  Options
	names []string
	index map[string]int
}

// NewRegistry 创建注册表并按顺序预先登记 names
//
// 预登记不受 Frozen 限制，重复或空名称会被跳过。
func NewRegistry(opts Options, names ...string) *Registry {
	r := &Registry{opts: opts, index: make(map[string]int, len(names))}
	for _, n := range names {
		key, ok := r.normalize(n)
		if !ok {
			continue
		}
		if _, dup := r.index[key]; dup {
			continue
		}
		r.index[key] = len(r.names)
		r.names = append(r.names, r.display(n))
	}
	return r
}

// Freeze 冻结注册表
func (r *Registry) Freeze() {
	r.opts.Frozen = true
}

// Len 返回已登记的标签数量
func (r *Registry) Len() int {
	return len(r.names)
}

// Index 查询标签名称对应的位索引
func (r *Registry) Index(name string) (int, bool) {
	key, ok := r.normalize(name)
	if !ok {
		return -1, false
	}
	i, ok := r.index[key]
	return i, ok
}

// IndexOrAdd 查询位索引，名称未登记时追加
//
// 参数:
//   - name: 标签名称
//
// 返回:
//   - int: 位索引
//   - error: ErrEmptyName 或 ErrFrozen
func (r *Registry) IndexOrAdd(name string) (int, error) {
	if r == nil {
		return -1, fmt.Errorf("tags: nil registry")
	}
	key, ok := r.normalize(name)
	if !ok {
		return -1, ErrEmptyName
	}
	if i, ok := r.index[key]; ok {
		return i, nil
	}
	if r.opts.Frozen {
		return -1, fmt.Errorf("%w: %q", ErrFrozen, name)
	}
	i := len(r.names)
	r.names = append(r.names, r.display(name))
	r.index[key] = i
	return i, nil
}

// Name 返回位索引对应的名称
func (r *Registry) Name(i int) (string, bool) {
	if i < 0 || i >= len(r.names) {
		return "", false
	}
	return r.names[i], true
}

// Names 返回按索引排列的全部名称副本
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// display 返回登记时保存的名称（保留原始大小写）
func (r *Registry) display(name string) string {
	if r.opts.TrimSpace {
		return strings.TrimSpace(name)
	}
	return name
}

func (r *Registry) normalize(name string) (string, bool) {
	if r.opts.TrimSpace {
		name = strings.TrimSpace(name)
	}
	if name == "" {
		return "", false
	}
	if r.opts.IgnoreCase {
		name = strings.ToLower(name)
	}
	return name, true
}
