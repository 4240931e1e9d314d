package roster

import (
	"math/rand/v2"
	"slices"
	"testing"
)

// --- 随机操作序列下的不变量测试 ---

// randomRows 生成随机名册数据，单位ID从较大范围中抽取且不重复
func randomRows(r *rand.Rand, n int) []Row {
	ids := r.Perm(200)[:n]
	rows := make([]Row, n)
	for i, id := range ids {
		rows[i] = Row{
			UnitID:     UnitID(id + 1),
			UnitTypeID: UnitTypeID(r.IntN(20)),
			Zone:       Zone(r.IntN(ZoneCount)),
		}
	}
	return rows
}

// validPlacements 为所有已部署单位生成一组合法布置
func validPlacements(r *rand.Rand, s *Store) []Placement {
	ids := s.ZoneOrder(ZoneDeployed)
	cells := r.Perm(BoardCells)
	out := make([]Placement, 0, len(ids))
	for i, id := range ids {
		if i >= BoardCells {
			break
		}
		out = append(out, Placement{UnitID: id, X: cells[i] % BoardWidth, Y: cells[i] / BoardWidth})
	}
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// corruptPlacements 随机破坏一组合法布置，使其必然被拒绝
func corruptPlacements(r *rand.Rand, s *Store, in []Placement) []Placement {
	out := slices.Clone(in)
	switch r.IntN(6) {
	case 0: // 遗漏一个
		if len(out) > 0 {
			return out[:len(out)-1]
		}
		return append(out, Placement{UnitID: 9999})
	case 1: // 越界
		if len(out) > 0 {
			out[r.IntN(len(out))].X = BoardWidth + r.IntN(3)
			return out
		}
	case 2: // 格子冲突
		if len(out) > 1 {
			out[1].X, out[1].Y = out[0].X, out[0].Y
			return out
		}
	case 3: // 单位重复
		if len(out) > 1 {
			out[1].UnitID = out[0].UnitID
			return out
		}
	case 4: // 未知单位
		if len(out) > 0 {
			out[0].UnitID = 9999
			return out
		}
	case 5: // 非部署区单位
		for z := range ZoneCount {
			if Zone(z) == ZoneDeployed || s.CountInZone(Zone(z)) == 0 || len(out) == 0 {
				continue
			}
			out[0].UnitID = s.ZoneOrder(Zone(z))[0]
			return out
		}
	}
	// 兜底：多出一条
	return append(out, Placement{UnitID: 9999})
}

// assertPublicInvariants 通过公开接口验证棋盘双向映射与区域划分
func assertPublicInvariants(t *testing.T, s *Store) {
	t.Helper()
	assertConsistent(t, s)

	// 棋盘双向映射
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardHeight; y++ {
			id, ok := s.UnitAt(x, y)
			if !ok {
				continue
			}
			px, py, placed := s.PositionOf(id)
			if !placed || px != x || py != y {
				t.Fatalf("UnitAt(%d,%d)=%d but PositionOf=(%d,%d,%v)", x, y, id, px, py, placed)
			}
		}
	}
	for p := range s.DeployedPlacements() {
		if id, ok := s.UnitAt(p.X, p.Y); !ok || id != p.UnitID {
			t.Fatalf("placement %+v not reflected by UnitAt (%d,%v)", p, id, ok)
		}
	}

	// 区域划分：每行恰好出现在一个区域
	seen := make(map[UnitID]Zone, s.Count())
	for _, z := range Zones() {
		for id := range s.UnitsInZone(z) {
			if prev, dup := seen[id]; dup {
				t.Fatalf("unit %d in zones %v and %v", id, prev, z)
			}
			seen[id] = z
		}
	}
	for row := range s.Rows() {
		if z, ok := seen[row.UnitID]; !ok || z != row.Zone {
			t.Fatalf("row %+v listed in zone %v (found=%v)", row, z, ok)
		}
	}
	if len(seen) != s.Count() {
		t.Fatalf("zones list %d units, count is %d", len(seen), s.Count())
	}
}

// TestRandomizedInvariants 随机交替执行合法/非法操作，验证原子性和一致性
func TestRandomizedInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		r := rand.New(rand.NewPCG(seed, seed*7919))
		s := NewStore()

		for step := 0; step < 300; step++ {
			before := captureState(s)
			var err error
			expectFail := false

			switch op := r.IntN(10); {
			case op == 0:
				rows := randomRows(r, r.IntN(Capacity+1))
				if len(rows) > 1 && r.IntN(3) == 0 {
					rows[len(rows)-1].UnitID = rows[0].UnitID
					expectFail = true
				}
				err = s.Load(rows)
				if err == nil && !slices.Equal(s.AllRows(), rows) {
					t.Fatalf("seed %d step %d: Load round trip mismatch", seed, step)
				}
			case op <= 3:
				z := Zone(r.IntN(ZoneCount))
				ids := s.ZoneOrder(z)
				r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
				if r.IntN(3) == 0 {
					expectFail = true
					if len(ids) > 1 {
						ids[0] = ids[1]
					} else {
						ids = append(ids, 9999)
					}
				}
				err = s.SetZoneOrder(z, ids)
				if err == nil && !slices.Equal(s.ZoneOrder(z), ids) {
					t.Fatalf("seed %d step %d: zone order not applied", seed, step)
				}
			default:
				placements := validPlacements(r, s)
				if s.CountInZone(ZoneDeployed) > BoardCells {
					expectFail = true
				}
				if r.IntN(2) == 0 {
					placements = corruptPlacements(r, s, placements)
					expectFail = true
				}
				err = s.SetDeployedPlacements(placements)
				if err == nil && s.PlacedCount() != s.CountInZone(ZoneDeployed) {
					t.Fatalf("seed %d step %d: %d placed of %d deployed", seed, step, s.PlacedCount(), s.CountInZone(ZoneDeployed))
				}
			}

			if expectFail && err == nil {
				t.Fatalf("seed %d step %d: corrupted input accepted", seed, step)
			}
			if err != nil {
				if !expectFail {
					t.Fatalf("seed %d step %d: valid input rejected: %v", seed, step, err)
				}
				assertUnchanged(t, before, s)
			}
			assertPublicInvariants(t, s)
		}
	}
}
