// Package tags 提供能力标签的位集合与名称注册表
//
// 单位模板通过标签名称声明固有能力（如 "Fly"、"Stealth"），加载时由 Registry
// 转换为位索引并烘焙成 Mask，运行时只做位运算查询。
package tags

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Mask 标签位集合
//
// 零值是空集合，可直接使用。复制 Mask 会共享底层存储，
// 烘焙完成后只读使用。
type Mask struct {
	bits bitset.BitSet
}

// Set 设置或清除索引 i 处的标签位，负索引被忽略
// 清除尚未分配的位不会扩容
func (m *Mask) Set(i int, v bool) {
	if i < 0 {
		return
	}
	m.bits.SetTo(uint(i), v)
}

// Has 检查索引 i 处的标签位
func (m Mask) Has(i int) bool {
	if i < 0 {
		return false
	}
	return m.bits.Test(uint(i))
}

// Clear 清空全部标签位
func (m *Mask) Clear() {
	m.bits.ClearAll()
}

// Len 返回已设置的标签位数量
func (m Mask) Len() int {
	return int(m.bits.Count())
}

// All 按索引升序遍历已设置的标签位
func (m Mask) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, ok := m.bits.NextSet(0); ok; i, ok = m.bits.NextSet(i + 1) {
			if !yield(int(i)) {
				return
			}
		}
	}
}

// HasTag 按名称查询标签，注册表为 nil 或名称未注册时返回 false
func (m Mask) HasTag(name string, reg *Registry) bool {
	if reg == nil {
		return false
	}
	i, ok := reg.Index(name)
	return ok && m.Has(i)
}

// SetTag 按名称设置标签，名称未注册时追加到注册表
//
// 返回:
//   - error: 注册表已冻结且名称未注册时返回 ErrFrozen，名称为空时返回 ErrEmptyName
func (m *Mask) SetTag(name string, reg *Registry) error {
	i, err := reg.IndexOrAdd(name)
	if err != nil {
		return err
	}
	m.Set(i, true)
	return nil
}
