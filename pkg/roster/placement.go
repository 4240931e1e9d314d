package roster

// gridPlan 一次严格布置的临时映射
// 校验全部在临时数组上完成，提交时整体替换棋盘映射
type gridPlan struct {
	cellToDense [BoardCells]int
	denseToCell [Capacity]int
}

// SetDeployedPlacements 严格设置所有已部署单位的格子位置
//
// 要求：
//  1. 条目数不超过当前 Deployed 人数（超出为 ErrCountMismatch）
//  2. 每个 (x, y) 在棋盘范围内，且不重复
//  3. 每个单位ID存在、位于 Deployed 区域，且不重复
//  4. 覆盖全部 Deployed 单位（少了为 ErrIncompleteCoverage）
//
// 通过后覆盖之前的全部布置；失败时棋盘保持不变。nil 与空列表等价。
func (s *Store) SetDeployedPlacements(placements []Placement) error {
	plan, err := s.planPlacements(placements)
	if err != nil {
		return err
	}
	s.cellToDense = plan.cellToDense
	s.denseToCell = plan.denseToCell
	return nil
}

// ValidatePlacements 执行与 SetDeployedPlacements 完全相同的校验，但不提交
// 拖拽预览时用于判断落点是否合法
func (s *Store) ValidatePlacements(placements []Placement) error {
	_, err := s.planPlacements(placements)
	return err
}

func (s *Store) planPlacements(placements []Placement) (*gridPlan, error) {
	deployed := s.buckets[ZoneDeployed]
	if len(placements) > len(deployed) {
		return nil, opError(OpSetDeployedPlacements, ErrCountMismatch)
	}
	if len(deployed) > BoardCells {
		return nil, opError(OpSetDeployedPlacements, ErrCapacityExceeded)
	}

	plan := &gridPlan{}
	for i := range plan.cellToDense {
		plan.cellToDense[i] = noIndex
	}
	for i := range plan.denseToCell {
		plan.denseToCell[i] = noIndex
	}

	for i, p := range placements {
		cell, ok := cellIndex(p.X, p.Y)
		if !ok {
			return nil, placementError(ErrOutOfBounds, i, p)
		}
		dense, ok := s.denseOf[p.UnitID]
		if !ok {
			return nil, placementError(ErrUnknownUnitID, i, p)
		}
		if s.zones[dense] != ZoneDeployed {
			return nil, placementError(ErrZoneMismatch, i, p)
		}
		if plan.denseToCell[dense] != noIndex {
			return nil, placementError(ErrDuplicateUnitID, i, p)
		}
		if plan.cellToDense[cell] != noIndex {
			return nil, placementError(ErrCellConflict, i, p)
		}
		plan.cellToDense[cell] = dense
		plan.denseToCell[dense] = cell
	}

	// 校验是否覆盖了全部 Deployed
	for _, dense := range deployed {
		if plan.denseToCell[dense] == noIndex {
			err := opError(OpSetDeployedPlacements, ErrIncompleteCoverage)
			err.Unit = s.unitIDs[dense]
			return nil, err
		}
	}
	return plan, nil
}

// UnitAt 查询格子上的单位
//
// 返回:
//   - UnitID: 占用该格子的单位
//   - bool: 越界或空格子返回 false
func (s *Store) UnitAt(x, y int) (UnitID, bool) {
	cell, ok := cellIndex(x, y)
	if !ok {
		return 0, false
	}
	dense := s.cellToDense[cell]
	if dense == noIndex {
		return 0, false
	}
	return s.unitIDs[dense], true
}

// PositionOf 查询单位所在的格子
// 单位不存在、不在 Deployed 区域或尚未布置位置时返回 false
func (s *Store) PositionOf(id UnitID) (x, y int, ok bool) {
	dense, found := s.denseOf[id]
	if !found || s.zones[dense] != ZoneDeployed {
		return 0, 0, false
	}
	cell := s.denseToCell[dense]
	if cell == noIndex {
		return 0, 0, false
	}
	x, y = cellXY(cell)
	return x, y, true
}

// IsCellFree 检查格子是否在棋盘内且无人占用
func (s *Store) IsCellFree(x, y int) bool {
	cell, ok := cellIndex(x, y)
	return ok && s.cellToDense[cell] == noIndex
}

// PlacedCount 返回已布置位置的单位数量
func (s *Store) PlacedCount() int {
	n := 0
	for _, dense := range s.buckets[ZoneDeployed] {
		if s.denseToCell[dense] != noIndex {
			n++
		}
	}
	return n
}
