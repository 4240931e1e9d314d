package roster

import "iter"

// Contains 检查单位是否在名册中
func (s *Store) Contains(id UnitID) bool {
	_, ok := s.denseOf[id]
	return ok
}

// Lookup 查询单位的模板ID和所在区域
func (s *Store) Lookup(id UnitID) (UnitTypeID, Zone, bool) {
	dense, ok := s.denseOf[id]
	if !ok {
		return 0, 0, false
	}
	return s.unitTypeIDs[dense], s.zones[dense], true
}

// CountInZone 返回区域内的单位数量，非法区域返回 0
func (s *Store) CountInZone(zone Zone) int {
	if !zone.Valid() {
		return 0
	}
	return len(s.buckets[zone])
}

// UnitsInZone 按显示顺序遍历区域内的单位ID
//
// 返回的序列可重复遍历，但只在下一次修改操作之前有效。
func (s *Store) UnitsInZone(zone Zone) iter.Seq[UnitID] {
	return func(yield func(UnitID) bool) {
		if !zone.Valid() {
			return
		}
		for _, dense := range s.buckets[zone] {
			if !yield(s.unitIDs[dense]) {
				return
			}
		}
	}
}

// Rows 按稠密索引顺序遍历全部行
func (s *Store) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(Row{UnitID: s.unitIDs[i], UnitTypeID: s.unitTypeIDs[i], Zone: s.zones[i]}) {
				return
			}
		}
	}
}

// DeployedPlacements 按 Deployed 区域显示顺序遍历"已部署且已布置位置"的单位
// 已部署但未布置位置的单位会被跳过
func (s *Store) DeployedPlacements() iter.Seq[Placement] {
	return func(yield func(Placement) bool) {
		for _, dense := range s.buckets[ZoneDeployed] {
			cell := s.denseToCell[dense]
			if cell == noIndex {
				continue
			}
			x, y := cellXY(cell)
			if !yield(Placement{UnitID: s.unitIDs[dense], X: x, Y: y}) {
				return
			}
		}
	}
}

// ZoneOrder 返回区域显示顺序的副本
func (s *Store) ZoneOrder(zone Zone) []UnitID {
	ids := make([]UnitID, 0, s.CountInZone(zone))
	for id := range s.UnitsInZone(zone) {
		ids = append(ids, id)
	}
	return ids
}

// AllRows 返回全部行的副本
func (s *Store) AllRows() []Row {
	rows := make([]Row, 0, s.count)
	for r := range s.Rows() {
		rows = append(rows, r)
	}
	return rows
}

// Placements 返回当前全部布置的副本
func (s *Store) Placements() []Placement {
	out := make([]Placement, 0, len(s.buckets[ZoneDeployed]))
	for p := range s.DeployedPlacements() {
		out = append(out, p)
	}
	return out
}
