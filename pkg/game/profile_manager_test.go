package game

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"testing"

	"github.com/decker502/roster/pkg/roster"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata，避免污染真实存档
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// sampleStore 创建一个已部署并布置好的名册
func sampleStore(t *testing.T) *roster.Store {
	t.Helper()
	s := roster.NewStore()
	err := s.Load([]roster.Row{
		{UnitID: 1, UnitTypeID: 100, Zone: roster.ZoneStaging},
		{UnitID: 2, UnitTypeID: 200, Zone: roster.ZoneDeployed},
		{UnitID: 3, UnitTypeID: 300, Zone: roster.ZoneDeployed},
		{UnitID: 4, UnitTypeID: 100, Zone: roster.ZoneShop},
		{UnitID: 5, UnitTypeID: 100, Zone: roster.ZoneStaging},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := s.SetZoneOrder(roster.ZoneStaging, []roster.UnitID{5, 1}); err != nil {
		t.Fatalf("SetZoneOrder() error: %v", err)
	}
	if err := s.SetDeployedPlacements([]roster.Placement{{UnitID: 2, X: 4, Y: 1}, {UnitID: 3, X: 0, Y: 3}}); err != nil {
		t.Fatalf("SetDeployedPlacements() error: %v", err)
	}
	return s
}

func assertSameRoster(t *testing.T, got, want *roster.Store) {
	t.Helper()
	if !slices.Equal(got.AllRows(), want.AllRows()) {
		t.Errorf("rows: got %v, want %v", got.AllRows(), want.AllRows())
	}
	for _, z := range roster.Zones() {
		if !slices.Equal(got.ZoneOrder(z), want.ZoneOrder(z)) {
			t.Errorf("zone %v order: got %v, want %v", z, got.ZoneOrder(z), want.ZoneOrder(z))
		}
	}
	if !slices.Equal(got.Placements(), want.Placements()) {
		t.Errorf("placements: got %v, want %v", got.Placements(), want.Placements())
	}
	if err := got.Check(); err != nil {
		t.Errorf("Check() error: %v", err)
	}
}

// TestProfileManagerPersistence 测试存档写入 gdata 后可被新实例读取
func TestProfileManagerPersistence(t *testing.T) {
	gdataManager := openTestGdata(t, "test_roster_profiles")
	original := sampleStore(t)

	pm := NewProfileManager(gdataManager)
	if err := pm.SaveRoster("campaign-1", original); err != nil {
		t.Fatalf("SaveRoster() error: %v", err)
	}
	if !pm.HasRoster("campaign-1") {
		t.Error("HasRoster() = false after save")
	}

	// 新实例模拟重启
	pm2 := NewProfileManager(gdataManager)
	if got := pm2.Profiles(); !slices.Equal(got, []string{"campaign-1"}) {
		t.Errorf("Profiles() after reopen = %v", got)
	}
	restored := roster.NewStore()
	if err := pm2.LoadRoster("campaign-1", restored); err != nil {
		t.Fatalf("LoadRoster() error: %v", err)
	}
	assertSameRoster(t, restored, original)
}

// TestProfileManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestProfileManagerNilGdata(t *testing.T) {
	pm := NewProfileManager(nil)
	original := sampleStore(t)

	if pm.HasRoster("main") {
		t.Error("HasRoster() = true before save")
	}
	if err := pm.SaveRoster("main", original); err != nil {
		t.Fatalf("SaveRoster() error: %v", err)
	}
	if err := pm.SaveRoster("alt", roster.NewStore()); err != nil {
		t.Fatalf("SaveRoster(empty) error: %v", err)
	}
	if got := pm.Profiles(); !slices.Equal(got, []string{"alt", "main"}) {
		t.Errorf("Profiles() = %v", got)
	}

	restored := roster.NewStore()
	if err := pm.LoadRoster("main", restored); err != nil {
		t.Fatalf("LoadRoster() error: %v", err)
	}
	assertSameRoster(t, restored, original)

	// 空存档恢复后名册为空
	if err := pm.LoadRoster("alt", restored); err != nil {
		t.Fatalf("LoadRoster(alt) error: %v", err)
	}
	if restored.Count() != 0 {
		t.Errorf("Count() = %d after loading empty profile", restored.Count())
	}
}

// TestProfileManagerErrors 测试存档名非法、不存在、内容损坏
func TestProfileManagerErrors(t *testing.T) {
	gdataManager := openTestGdata(t, "test_roster_profile_errors")
	pm := NewProfileManager(gdataManager)
	s := sampleStore(t)
	before := s.AllRows()

	for _, name := range []string{"", "../escape", "has space", indexProperty} {
		if err := pm.SaveRoster(name, s); err == nil {
			t.Errorf("SaveRoster(%q) accepted invalid name", name)
		}
		if pm.HasRoster(name) {
			t.Errorf("HasRoster(%q) = true", name)
		}
	}

	if err := pm.LoadRoster("missing", s); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("LoadRoster(missing) error = %v, want ErrProfileNotFound", err)
	}

	// 写入一个违反名册规则的存档（格子冲突）
	corrupt := []byte("units:\n  - {id: 1, type: 1, zone: deployed}\n  - {id: 2, type: 1, zone: deployed}\nplacements:\n  - {id: 1, x: 0, y: 0}\n  - {id: 2, x: 0, y: 0}\n")
	if err := gdataManager.SaveObjectProp(rostersObject, "broken", corrupt); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}
	err := pm.LoadRoster("broken", s)
	if !errors.Is(err, roster.ErrCellConflict) {
		t.Errorf("LoadRoster(broken) error = %v, want ErrCellConflict", err)
	}
	if !slices.Equal(s.AllRows(), before) || s.PlacedCount() != 2 {
		t.Error("failed restore modified the target roster")
	}

	if err := gdataManager.SaveObjectProp(rostersObject, "garbage", []byte("units: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}
	if err := pm.LoadRoster("garbage", s); err == nil {
		t.Error("LoadRoster(garbage) succeeded")
	}
}

// TestProfileManagerCorruptIndex 测试索引损坏时从空列表开始
func TestProfileManagerCorruptIndex(t *testing.T) {
	gdataManager := openTestGdata(t, "test_roster_profile_index")
	if err := gdataManager.SaveObjectProp(rostersObject, indexProperty, []byte("{not: [a list")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	pm := NewProfileManager(gdataManager)
	if got := pm.Profiles(); len(got) != 0 {
		t.Errorf("Profiles() = %v, want empty", got)
	}

	for i := range 3 {
		if err := pm.SaveRoster(fmt.Sprintf("slot_%d", 2-i), roster.NewStore()); err != nil {
			t.Fatalf("SaveRoster() error: %v", err)
		}
	}
	if got := NewProfileManager(gdataManager).Profiles(); !slices.Equal(got, []string{"slot_0", "slot_1", "slot_2"}) {
		t.Errorf("Profiles() after rewrite = %v", got)
	}
}
