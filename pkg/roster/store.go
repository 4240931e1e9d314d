package roster

// Store 玩家单位名册
//
// 数据布局：
//   - 列数据 unitIDs/unitTypeIDs/zones/indexInBucket 按稠密索引 [0, count) 存放
//   - denseOf 为单位ID到稠密索引的映射
//   - buckets[zone] 为该区域成员的稠密索引列表，顺序即显示顺序
//   - cellToDense 为格子到稠密索引的映射（-1 表示空格子）
//   - denseToCell 为稠密索引到格子的映射（-1 表示未部署或未布置位置）
//
// 稠密索引只在下一次 Load 之前稳定，外部一律使用 UnitID。
type Store struct {
	count int

	unitIDs       [Capacity]UnitID
	unitTypeIDs   [Capacity]UnitTypeID
	zones         [Capacity]Zone
	indexInBucket [Capacity]int

	denseOf map[UnitID]int
	buckets [ZoneCount][]int

	cellToDense [BoardCells]int
	denseToCell [Capacity]int
}

// NewStore 创建空名册
func NewStore() *Store {
	s := &Store{
		denseOf: make(map[UnitID]int, Capacity),
	}
	for z := range s.buckets {
		s.buckets[z] = make([]int, 0, Capacity)
	}
	s.resetGrid()
	return s
}

// Load 整表加载名册
//
// 校验通过后替换全部数据：行按输入顺序写入稠密槽位，区域内显示顺序即输入顺序，
// 棋盘位置全部重置为"未布置"。nil 或空输入等价于 Clear。
//
// 参数:
//   - rows: 单位行列表，长度不超过 Capacity
//
// 返回:
//   - error: ErrCapacityExceeded / ErrInvalidZone / ErrDuplicateUnitID，失败时名册不变
func (s *Store) Load(rows []Row) error {
	if len(rows) == 0 {
		s.Clear()
		return nil
	}
	if len(rows) > Capacity {
		return opError(OpLoad, ErrCapacityExceeded)
	}

	seen := make(map[UnitID]struct{}, len(rows))
	for i, r := range rows {
		if !r.Zone.Valid() {
			return entryError(OpLoad, ErrInvalidZone, i, r.UnitID)
		}
		if _, dup := seen[r.UnitID]; dup {
			return entryError(OpLoad, ErrDuplicateUnitID, i, r.UnitID)
		}
		seen[r.UnitID] = struct{}{}
	}

	s.Clear()
	for i, r := range rows {
		s.unitIDs[i] = r.UnitID
		s.unitTypeIDs[i] = r.UnitTypeID
		s.zones[i] = r.Zone
		s.denseOf[r.UnitID] = i

		// 位置：仅 Deployed 参与棋盘，初始均为未布置
		s.indexInBucket[i] = len(s.buckets[r.Zone])
		s.buckets[r.Zone] = append(s.buckets[r.Zone], i)
	}
	s.count = len(rows)
	return nil
}

// Clear 清空名册（count = 0，所有区域为空，棋盘为空）
func (s *Store) Clear() {
	s.count = 0
	if s.denseOf == nil {
		s.denseOf = make(map[UnitID]int, Capacity)
	}
	clear(s.denseOf)
	for z := range s.buckets {
		s.buckets[z] = s.buckets[z][:0]
	}
	// 列数据不必清零，count = 0 之后不会被读取
	s.resetGrid()
}

// Count 返回名册中的单位数量
func (s *Store) Count() int {
	return s.count
}

// Capacity 返回名册固定容量
func (s *Store) Capacity() int {
	return Capacity
}

func (s *Store) resetGrid() {
	for i := range s.cellToDense {
		s.cellToDense[i] = noIndex
	}
	for i := range s.denseToCell {
		s.denseToCell[i] = noIndex
	}
}
