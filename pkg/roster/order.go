package roster

// SetZoneOrder 严格设置区域内的显示顺序
//
// ids 必须恰好是该区域当前成员的一个排列：条目数相等、每个ID存在且属于该区域、无重复。
// 任意一条不满足则整体失败，区域顺序保持不变。
//
// 参数:
//   - zone: 目标区域
//   - ids: 新的显示顺序
//
// 返回:
//   - error: ErrInvalidZone / ErrCountMismatch / ErrUnknownUnitID / ErrZoneMismatch / ErrDuplicateUnitID
func (s *Store) SetZoneOrder(zone Zone, ids []UnitID) error {
	if !zone.Valid() {
		return opError(OpSetZoneOrder, ErrInvalidZone)
	}
	bucket := s.buckets[zone]
	n := len(bucket)
	if len(ids) != n {
		return opError(OpSetZoneOrder, ErrCountMismatch)
	}
	if n == 0 {
		return nil
	}

	newOrder := make([]int, n)
	var seen [Capacity]bool
	for i, id := range ids {
		dense, ok := s.denseOf[id]
		if !ok {
			return entryError(OpSetZoneOrder, ErrUnknownUnitID, i, id)
		}
		if s.zones[dense] != zone {
			return entryError(OpSetZoneOrder, ErrZoneMismatch, i, id)
		}
		if seen[dense] {
			return entryError(OpSetZoneOrder, ErrDuplicateUnitID, i, id)
		}
		seen[dense] = true
		newOrder[i] = dense
	}

	for i, dense := range newOrder {
		bucket[i] = dense
		s.indexInBucket[dense] = i
	}
	return nil
}

// IndexInZone 返回单位在其区域内的显示位置（从 0 开始）
func (s *Store) IndexInZone(id UnitID) (int, bool) {
	dense, ok := s.denseOf[id]
	if !ok {
		return 0, false
	}
	return s.indexInBucket[dense], true
}
