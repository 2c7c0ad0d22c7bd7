package relocate_test

import (
	"os"
	"path/filepath"
	"testing"

	"romuless/internal/relocate"
	"romuless/internal/testsupport"
)

func TestSortDestination(t *testing.T) {
	plan := relocate.SortDestination("/library", "Moved ROMS", filepath.Join("NES", "Game (Japan).nes"))
	if plan.LogicalRel != filepath.Join("Moved ROMS", "NES", "Game (Japan).nes") {
		t.Fatalf("logical = %q", plan.LogicalRel)
	}
	if plan.PhysicalAbs != filepath.Join("/library", "Moved ROMS", "NES", "Game (Japan).nes") {
		t.Fatalf("physical = %q", plan.PhysicalAbs)
	}
}

func TestRemergeDestination(t *testing.T) {
	plan := relocate.RemergeDestination("/library", filepath.Join("NES", "Game (Japan).nes"))
	if plan.LogicalRel != filepath.Join("NES", "Game (Japan).nes") {
		t.Fatalf("logical = %q", plan.LogicalRel)
	}
	if plan.PhysicalAbs != filepath.Join("/library", "NES", "Game (Japan).nes") {
		t.Fatalf("physical = %q", plan.PhysicalAbs)
	}
}

func TestMoveLiveCreatesParentsAndMoves(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "Game.bin")
	dest := filepath.Join(root, "Moved ROMS", "Sega", "Game.bin")
	testsupport.WriteFile(t, src, 16)

	engine := relocate.NewEngine(nil)
	final, err := engine.Move(src, dest, true)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if final != dest {
		t.Fatalf("final = %q, want %q", final, dest)
	}
	if testsupport.Exists(t, src) {
		t.Fatal("source still present after live move")
	}
	if !testsupport.Exists(t, dest) {
		t.Fatal("destination missing after live move")
	}
}

func TestMoveResolvesCollisionsWithoutOverwrite(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "out", "Game.bin")
	testsupport.WriteFile(t, dest, 4)
	original := testsupport.ReadFile(t, dest)

	engine := relocate.NewEngine(nil)
	srcA := filepath.Join(root, "a", "Game.bin")
	srcB := filepath.Join(root, "b", "Game.bin")
	testsupport.WriteFile(t, srcA, 8)
	testsupport.WriteFile(t, srcB, 12)

	finalA, err := engine.Move(srcA, dest, true)
	if err != nil {
		t.Fatalf("first Move: %v", err)
	}
	finalB, err := engine.Move(srcB, dest, true)
	if err != nil {
		t.Fatalf("second Move: %v", err)
	}

	if finalA != filepath.Join(root, "out", "Game (1).bin") {
		t.Fatalf("first collision target = %q", finalA)
	}
	if finalB != filepath.Join(root, "out", "Game (2).bin") {
		t.Fatalf("second collision target = %q", finalB)
	}
	if got := testsupport.ReadFile(t, dest); string(got) != string(original) {
		t.Fatal("pre-existing destination was overwritten")
	}
}

func TestMoveDryRunMutatesNothing(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "Game.bin")
	dest := filepath.Join(root, "Moved ROMS", "Game.bin")
	testsupport.WriteFile(t, src, 4)

	engine := relocate.NewEngine(nil)
	final, err := engine.Move(src, dest, false)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if final != dest {
		t.Fatalf("final = %q, want planned destination", final)
	}
	if !testsupport.Exists(t, src) {
		t.Fatal("dry-run removed the source")
	}
	if testsupport.Exists(t, filepath.Join(root, "Moved ROMS")) {
		t.Fatal("dry-run created destination directories")
	}
}

func TestMoveDryRunReportsExistingCollision(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "Game.bin")
	dest := filepath.Join(root, "out", "Game.bin")
	testsupport.WriteFile(t, src, 4)
	testsupport.WriteFile(t, dest, 4)

	engine := relocate.NewEngine(nil)
	final, err := engine.Move(src, dest, false)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if final != filepath.Join(root, "out", "Game (1).bin") {
		t.Fatalf("final = %q, want suffixed name against current filesystem", final)
	}
	if info, err := os.Stat(dest); err != nil || info.Size() != 4 {
		t.Fatal("existing destination disturbed by dry-run")
	}
}
