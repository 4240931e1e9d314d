package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/decker502/roster/pkg/roster"
)

const sampleRoster = `
units:
  - {id: 1, type: 100, zone: staging}
  - {id: 2, type: 200, zone: deployed}
  - {id: 3, type: 300, zone: Deployed}
  - {id: 4, type: 100, zone: shop}
order:
  deployed: [3, 2]
placements:
  - {id: 2, x: 0, y: 0}
  - {id: 3, x: 8, y: 3}
`

func TestLoadRosterFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "roster.yaml")
	if err := os.WriteFile(path, []byte(sampleRoster), 0644); err != nil {
		t.Fatalf("Failed to write roster: %v", err)
	}

	rf, err := LoadRosterFile(path)
	if err != nil {
		t.Fatalf("LoadRosterFile failed: %v", err)
	}
	if len(rf.Units) != 4 || len(rf.Placements) != 2 {
		t.Fatalf("units=%d placements=%d", len(rf.Units), len(rf.Placements))
	}

	s := roster.NewStore()
	if err := rf.Apply(s); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if got := s.ZoneOrder(roster.ZoneDeployed); !slices.Equal(got, []roster.UnitID{3, 2}) {
		t.Errorf("ZoneOrder(Deployed) = %v, want [3 2]", got)
	}
	if id, ok := s.UnitAt(8, 3); !ok || id != 3 {
		t.Errorf("UnitAt(8,3) = %d, %v", id, ok)
	}
	if typeID, zone, _ := s.Lookup(4); typeID != 100 || zone != roster.ZoneShop {
		t.Errorf("Lookup(4) = %d, %v", typeID, zone)
	}
}

func TestLoadRosterFileErrors(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := LoadRosterFile(filepath.Join(tempDir, "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	tests := []struct {
		name    string
		content string
	}{
		{"未知区域", "units:\n  - {id: 1, type: 1, zone: bench}\n"},
		{"未知顺序区域", "units: []\norder:\n  bench: []\n"},
		{"重复顺序区域", "units: []\norder:\n  shop: []\n  Shop: []\n"},
		{"YAML格式错误", "units: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRoster([]byte(tt.content)); err == nil {
				t.Errorf("ParseRoster(%q) succeeded", tt.content)
			}
		})
	}
}

func TestRosterApplyStopsAtFirstError(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantN   int // 失败后名册中的单位数
	}{
		{
			name:    "重复单位ID",
			content: "units:\n  - {id: 1, type: 1, zone: staging}\n  - {id: 1, type: 1, zone: shop}\n",
			wantErr: roster.ErrDuplicateUnitID,
			wantN:   0,
		},
		{
			name:    "顺序缺少单位",
			content: "units:\n  - {id: 1, type: 1, zone: staging}\n  - {id: 2, type: 1, zone: staging}\norder:\n  staging: [2]\n",
			wantErr: roster.ErrCountMismatch,
			wantN:   2,
		},
		{
			name:    "布置格子冲突",
			content: "units:\n  - {id: 1, type: 1, zone: deployed}\n  - {id: 2, type: 1, zone: deployed}\nplacements:\n  - {id: 1, x: 0, y: 0}\n  - {id: 2, x: 0, y: 0}\n",
			wantErr: roster.ErrCellConflict,
			wantN:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf, err := ParseRoster([]byte(tt.content))
			if err != nil {
				t.Fatalf("ParseRoster() error: %v", err)
			}
			s := roster.NewStore()
			if err := rf.Apply(s); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
			}
			if s.Count() != tt.wantN {
				t.Errorf("Count() = %d, want %d", s.Count(), tt.wantN)
			}
			if s.PlacedCount() != 0 {
				t.Errorf("PlacedCount() = %d after failed apply", s.PlacedCount())
			}
			if err := s.Check(); err != nil {
				t.Errorf("Check() error: %v", err)
			}
		})
	}
}

func TestSnapshotRosterRoundTrip(t *testing.T) {
	rf, err := ParseRoster([]byte(sampleRoster))
	if err != nil {
		t.Fatalf("ParseRoster() error: %v", err)
	}
	original := roster.NewStore()
	if err := rf.Apply(original); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	data, err := SnapshotRoster(original).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	parsed, err := ParseRoster(data)
	if err != nil {
		t.Fatalf("ParseRoster(snapshot) error: %v\n%s", err, data)
	}
	restored := roster.NewStore()
	if err := parsed.Apply(restored); err != nil {
		t.Fatalf("Apply(snapshot) error: %v", err)
	}

	if !slices.Equal(restored.AllRows(), original.AllRows()) {
		t.Errorf("rows differ: %v vs %v", restored.AllRows(), original.AllRows())
	}
	for _, z := range roster.Zones() {
		if !slices.Equal(restored.ZoneOrder(z), original.ZoneOrder(z)) {
			t.Errorf("zone %v order differs", z)
		}
	}
	if !slices.Equal(restored.Placements(), original.Placements()) {
		t.Errorf("placements differ: %v vs %v", restored.Placements(), original.Placements())
	}
}

func TestSnapshotEmptyRoster(t *testing.T) {
	rf := SnapshotRoster(roster.NewStore())
	if len(rf.Units) != 0 || rf.Order != nil || rf.Placements != nil {
		t.Errorf("snapshot of empty store = %+v", rf)
	}
	s := roster.NewStore()
	if err := rf.Apply(s); err != nil || s.Count() != 0 {
		t.Errorf("Apply(empty) = %v, Count=%d", err, s.Count())
	}
}
