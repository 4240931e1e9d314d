package roster

import "fmt"

// Check 校验名册内部索引的一致性
//
// 检查项：
//   - 单位ID两两不同，且 denseOf 与列数据一致
//   - 每个稠密索引恰好出现在一个区域中，且区域与行的 zone 一致
//   - 格子映射与反向映射互为逆，且只有 Deployed 单位占用格子
//   - count 与占用数不超过容量
//
// 正常使用下永远返回 nil，供测试和 rosterctl -check 使用。
func (s *Store) Check() error {
	if s.count < 0 || s.count > Capacity {
		return fmt.Errorf("count %d outside [0,%d]", s.count, Capacity)
	}
	if len(s.denseOf) != s.count {
		return fmt.Errorf("id map holds %d entries, count is %d", len(s.denseOf), s.count)
	}
	for i := 0; i < s.count; i++ {
		dense, ok := s.denseOf[s.unitIDs[i]]
		if !ok || dense != i {
			return fmt.Errorf("unit %d at dense %d maps to %d (found=%v)", s.unitIDs[i], i, dense, ok)
		}
	}

	var owner [Capacity]int
	for i := range owner {
		owner[i] = noIndex
	}
	total := 0
	for z, bucket := range s.buckets {
		for pos, dense := range bucket {
			if dense < 0 || dense >= s.count {
				return fmt.Errorf("zone %v holds dense %d outside [0,%d)", Zone(z), dense, s.count)
			}
			if owner[dense] != noIndex {
				return fmt.Errorf("dense %d in zones %v and %v", dense, Zone(owner[dense]), Zone(z))
			}
			owner[dense] = z
			if s.zones[dense] != Zone(z) {
				return fmt.Errorf("dense %d in zone %v bucket but row zone is %v", dense, Zone(z), s.zones[dense])
			}
			if s.indexInBucket[dense] != pos {
				return fmt.Errorf("dense %d at bucket position %d records %d", dense, pos, s.indexInBucket[dense])
			}
		}
		total += len(bucket)
	}
	if total != s.count {
		return fmt.Errorf("zones hold %d rows, count is %d", total, s.count)
	}

	occupied := 0
	for cell, dense := range s.cellToDense {
		if dense == noIndex {
			continue
		}
		occupied++
		if dense < 0 || dense >= s.count {
			return fmt.Errorf("cell %d holds dense %d outside [0,%d)", cell, dense, s.count)
		}
		if s.denseToCell[dense] != cell {
			return fmt.Errorf("cell %d holds dense %d but dense maps to cell %d", cell, dense, s.denseToCell[dense])
		}
		if s.zones[dense] != ZoneDeployed {
			return fmt.Errorf("cell %d holds dense %d in zone %v", cell, dense, s.zones[dense])
		}
	}
	for dense := 0; dense < s.count; dense++ {
		cell := s.denseToCell[dense]
		if cell == noIndex {
			continue
		}
		if cell < 0 || cell >= BoardCells || s.cellToDense[cell] != dense {
			return fmt.Errorf("dense %d maps to cell %d which does not point back", dense, cell)
		}
	}
	if occupied > BoardCells {
		return fmt.Errorf("occupancy %d exceeds %d cells", occupied, BoardCells)
	}
	return nil
}
