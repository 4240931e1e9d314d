package roster

import (
	"maps"
	"reflect"
	"slices"
	"testing"
)

// storeState 名册内部状态的深拷贝，用于验证失败操作不产生任何改动
type storeState struct {
	store   Store
	denseOf map[UnitID]int
	buckets [ZoneCount][]int
}

func captureState(s *Store) storeState {
	st := storeState{store: *s}
	st.store.denseOf = nil
	st.store.buckets = [ZoneCount][]int{}
	st.denseOf = maps.Clone(s.denseOf)
	for z := range s.buckets {
		st.buckets[z] = slices.Clone(s.buckets[z])
	}
	return st
}

// assertUnchanged 断言名册状态与 before 完全一致
func assertUnchanged(t *testing.T, before storeState, s *Store) {
	t.Helper()
	after := captureState(s)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("store state changed after rejected mutation:\nbefore=%+v\nafter=%+v", before, after)
	}
}

// assertConsistent 断言名册内部索引一致
func assertConsistent(t *testing.T, s *Store) {
	t.Helper()
	if err := s.Check(); err != nil {
		t.Fatalf("store inconsistent: %v", err)
	}
}

// sampleRows 示例数据：1 个备战单位，2 个已部署单位
func sampleRows() []Row {
	return []Row{
		{UnitID: 1, UnitTypeID: 100, Zone: ZoneStaging},
		{UnitID: 2, UnitTypeID: 200, Zone: ZoneDeployed},
		{UnitID: 3, UnitTypeID: 300, Zone: ZoneDeployed},
	}
}

func mustLoad(t *testing.T, rows []Row) *Store {
	t.Helper()
	s := NewStore()
	if err := s.Load(rows); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return s
}
