package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestReadFileFallback(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local.yaml")
	if err := os.WriteFile(local, []byte("local"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	t.Cleanup(func() { Init(nil) })
	Init(fstest.MapFS{
		"data/units/knight.yaml": {Data: []byte("embedded")},
	})

	t.Run("嵌入文件", func(t *testing.T) {
		data, err := ReadFile("./data/units/knight.yaml")
		if err != nil || string(data) != "embedded" {
			t.Errorf("ReadFile() = %q, %v", data, err)
		}
		if !Exists("data/units/knight.yaml") {
			t.Error("Exists() = false for embedded file")
		}
	})

	t.Run("本地文件", func(t *testing.T) {
		data, err := ReadFile(local)
		if err != nil || string(data) != "local" {
			t.Errorf("ReadFile() = %q, %v", data, err)
		}
	})

	t.Run("目录", func(t *testing.T) {
		entries, err := ReadDir("data/units/")
		if err != nil || len(entries) != 1 || entries[0].Name() != "knight.yaml" {
			t.Errorf("ReadDir() = %v, %v", entries, err)
		}
	})

	t.Run("不存在", func(t *testing.T) {
		if _, err := ReadFile("data/units/missing.yaml"); err == nil {
			t.Error("ReadFile() of missing file succeeded")
		}
		if Exists(filepath.Join(dir, "missing")) {
			t.Error("Exists() = true for missing file")
		}
	})
}

func TestNotInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Fatal("IsInitialized() = true after Init(nil)")
	}
	if _, err := ReadFile("data/units/knight.yaml"); err == nil {
		t.Error("ReadFile() succeeded without embedded data or local file")
	}
}
