package roster

import (
	"errors"
	"slices"
	"testing"
)

func orderRows() []Row {
	return []Row{
		{UnitID: 10, Zone: ZoneStaging},
		{UnitID: 11, Zone: ZoneStaging},
		{UnitID: 12, Zone: ZoneStaging},
		{UnitID: 20, Zone: ZoneShop},
		{UnitID: 21, Zone: ZoneShop},
	}
}

// TestSetZoneOrder 测试合法排列被接受并成为新的显示顺序
func TestSetZoneOrder(t *testing.T) {
	s := mustLoad(t, orderRows())

	want := []UnitID{12, 10, 11}
	if err := s.SetZoneOrder(ZoneStaging, want); err != nil {
		t.Fatalf("SetZoneOrder() error: %v", err)
	}
	if got := s.ZoneOrder(ZoneStaging); !slices.Equal(got, want) {
		t.Errorf("ZoneOrder(Staging) = %v, want %v", got, want)
	}
	// 其他区域不受影响
	if got := s.ZoneOrder(ZoneShop); !slices.Equal(got, []UnitID{20, 21}) {
		t.Errorf("ZoneOrder(Shop) = %v, want [20 21]", got)
	}
	// 稠密顺序不受影响
	if got := s.AllRows()[0].UnitID; got != 10 {
		t.Errorf("AllRows()[0].UnitID = %d, want 10", got)
	}
	for i, id := range want {
		if idx, _ := s.IndexInZone(id); idx != i {
			t.Errorf("IndexInZone(%d) = %d, want %d", id, idx, i)
		}
	}
	assertConsistent(t, s)
}

// TestSetZoneOrderEmptyZone 测试空区域只接受空输入
func TestSetZoneOrderEmptyZone(t *testing.T) {
	s := mustLoad(t, orderRows())

	if err := s.SetZoneOrder(ZoneOverflow, nil); err != nil {
		t.Errorf("SetZoneOrder(Overflow, nil) error: %v", err)
	}
	if err := s.SetZoneOrder(ZoneOverflow, []UnitID{}); err != nil {
		t.Errorf("SetZoneOrder(Overflow, []) error: %v", err)
	}
	if err := s.SetZoneOrder(ZoneOverflow, []UnitID{10}); !errors.Is(err, ErrCountMismatch) {
		t.Errorf("SetZoneOrder(Overflow, [10]) error = %v, want ErrCountMismatch", err)
	}
}

// TestSetZoneOrderRejects 测试所有非法输入被整体拒绝
func TestSetZoneOrderRejects(t *testing.T) {
	tests := []struct {
		name    string
		zone    Zone
		ids     []UnitID
		wantErr error
		wantIdx int
	}{
		{"条目过少", ZoneStaging, []UnitID{10, 11}, ErrCountMismatch, -1},
		{"条目过多", ZoneStaging, []UnitID{10, 11, 12, 10}, ErrCountMismatch, -1},
		{"nil 输入", ZoneStaging, nil, ErrCountMismatch, -1},
		{"未知单位", ZoneStaging, []UnitID{12, 99, 10}, ErrUnknownUnitID, 1},
		{"其他区域的单位", ZoneStaging, []UnitID{10, 11, 20}, ErrZoneMismatch, 2},
		{"重复单位（同时遗漏）", ZoneStaging, []UnitID{11, 11, 10}, ErrDuplicateUnitID, 1},
		{"非法区域", Zone(4), []UnitID{}, ErrInvalidZone, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustLoad(t, orderRows())
			if err := s.SetZoneOrder(ZoneStaging, []UnitID{11, 12, 10}); err != nil {
				t.Fatalf("SetZoneOrder() setup error: %v", err)
			}
			before := captureState(s)

			err := s.SetZoneOrder(tt.zone, tt.ids)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetZoneOrder() error = %v, want %v", err, tt.wantErr)
			}
			var rerr *Error
			if !errors.As(err, &rerr) {
				t.Fatalf("error %T is not *roster.Error", err)
			}
			if rerr.Op != OpSetZoneOrder || rerr.Index != tt.wantIdx {
				t.Errorf("Error{Op=%q Index=%d}, want {%q %d}", rerr.Op, rerr.Index, OpSetZoneOrder, tt.wantIdx)
			}
			assertUnchanged(t, before, s)
		})
	}
}
