package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/shadowmaze/ecs/component"
)

func useDiskRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })
	return dir
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPursuerSpecEmbedded(t *testing.T) {
	useDiskRoot(t)
	spec, err := LoadPursuerSpec()
	if err != nil {
		t.Fatalf("LoadPursuerSpec: %v", err)
	}
	if got, want := spec.Tuning(), component.DefaultTuning(); got != want {
		t.Fatalf("Tuning = %+v, want %+v", got, want)
	}
	if spec.ContactDamage != 5 {
		t.Fatalf("contact damage = %v", spec.ContactDamage)
	}
	if b := spec.Body.Body(); b.Width != 33 || b.Height != 35 {
		t.Fatalf("body = %+v", b)
	}
	if spec.VariantOrDefault() != component.VariantSight {
		t.Fatalf("variant = %q", spec.Variant)
	}
}

func TestPursuerSpeed(t *testing.T) {
	useDiskRoot(t)
	spec, err := LoadPursuerSpec()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		difficulty string
		want       float64
		wantErr    bool
	}{
		{"", 60, false},
		{"easy", 45, false},
		{"Hard", 75, false},
		{" impossible ", 90, false},
		{"nightmare", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.difficulty, func(t *testing.T) {
			got, err := spec.Speed(tc.difficulty)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("Speed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDiskOverride(t *testing.T) {
	dir := useDiskRoot(t)
	writeFile(t, filepath.Join(dir, PursuerFile), `
variant: pursue
difficulty: easy
speeds:
  easy: 10
sight_distance: 120
memory_window_ms: 250
strict_relaxation: true
`)
	spec, err := LoadPursuerSpec()
	if err != nil {
		t.Fatalf("LoadPursuerSpec: %v", err)
	}
	tuning := spec.Tuning()
	if tuning.SightDistance != 120 || tuning.MemoryWindow != 250*time.Millisecond || !tuning.StrictRelaxation {
		t.Fatalf("tuning = %+v", tuning)
	}
	if tuning.SampleStride != component.DefaultTuning().SampleStride {
		t.Fatalf("unset stride should keep the default, got %d", tuning.SampleStride)
	}
	if speed, _ := spec.Speed(""); speed != 10 {
		t.Fatalf("speed = %v", speed)
	}
	if _, ok := ModTime(PursuerFile); !ok {
		t.Fatal("ModTime should see the override")
	}
}

func TestLoadSpecErrors(t *testing.T) {
	dir := useDiskRoot(t)
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "speeds: [1, 2"},
		{"negative sight", "sight_distance: -1"},
		{"negative speed", "speeds:\n  easy: -3"},
		{"negative window", "memory_window_ms: -5"},
		{"infinite sight", "sight_distance: .inf"},
		{"nan sight", "sight_distance: .nan"},
		{"infinite spread", "sight_spread: -.inf"},
		{"infinite speed", "speeds:\n  easy: .inf"},
		{"unknown variant", "variant: chase"},
		{"variant case", "variant: Sight"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			writeFile(t, filepath.Join(dir, PursuerFile), tc.body)
			if _, err := LoadPursuerSpec(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
	if _, err := LoadSpec[PursuerSpec]("missing.yaml"); err == nil {
		t.Fatal("expected an error for a missing spec")
	}
}

func TestLoadTargetSpec(t *testing.T) {
	useDiskRoot(t)
	spec, err := LoadTargetSpec()
	if err != nil {
		t.Fatalf("LoadTargetSpec: %v", err)
	}
	if spec.Health != component.DefaultTargetHealth || spec.Beam.Range != component.DefaultBeamRange || spec.Beam.Charges != 1 {
		t.Fatalf("spec = %+v", spec)
	}
}

func TestLoadScript(t *testing.T) {
	dir := useDiskRoot(t)
	embedded, err := LoadScript("patrol.tengo")
	if err != nil || len(embedded) == 0 {
		t.Fatalf("embedded patrol: %v", err)
	}

	writeFile(t, filepath.Join(dir, "scripts", "patrol.tengo"), "dest_col := 0\ndest_row := 0\n")
	override, err := LoadScript("prefabs/scripts/patrol.tengo")
	if err != nil {
		t.Fatal(err)
	}
	if string(override) != "dest_col := 0\ndest_row := 0\n" {
		t.Fatalf("override not used: %q", override)
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"patrol.tengo", "scripts/patrol.tengo"},
		{"scripts/patrol.tengo", "scripts/patrol.tengo"},
		{"prefabs/patrol.tengo", "scripts/patrol.tengo"},
		{"prefabs/scripts/patrol.tengo", "scripts/patrol.tengo"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := cleanScriptPath(tc.in); got != tc.want {
			t.Errorf("cleanScriptPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, PursuerFile), "sight_distance: 90\n")

	select {
	case name := <-w.Events:
		if filepath.Base(name) != PursuerFile {
			t.Fatalf("event for %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the spec edit")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for range w.Events {
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
