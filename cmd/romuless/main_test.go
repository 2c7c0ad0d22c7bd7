package main

import (
	"testing"

	"romuless/internal/config"
	"romuless/internal/language"
	"romuless/internal/reconcile"
)

func TestResolveKeepSetDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sort.KeepLanguages = []string{"en", "jp"}

	keep, err := resolveKeepSet(reconcile.Sort, nil, false, &cfg)
	if err != nil {
		t.Fatalf("resolveKeepSet: %v", err)
	}
	if !keep.Contains(language.English) || !keep.Contains(language.Japanese) {
		t.Fatalf("expected en and jp in keep-set, got %s", keep.Label())
	}
	if keep.RestoresAll() {
		t.Fatal("config defaults should not produce a restore-all set")
	}
}

func TestResolveKeepSetEmptyFlagRemergeRestoresAll(t *testing.T) {
	cfg := config.Default()

	keep, err := resolveKeepSet(reconcile.Remerge, nil, true, &cfg)
	if err != nil {
		t.Fatalf("resolveKeepSet: %v", err)
	}
	if !keep.RestoresAll() {
		t.Fatalf("explicit empty --keep during remerge should restore all, got %s", keep.Label())
	}
}

func TestResolveKeepSetEmptyFlagSortCoercesToEnglish(t *testing.T) {
	cfg := config.Default()
	cfg.Sort.KeepLanguages = []string{"jp"}

	keep, err := resolveKeepSet(reconcile.Sort, nil, true, &cfg)
	if err != nil {
		t.Fatalf("resolveKeepSet: %v", err)
	}
	if keep.RestoresAll() {
		t.Fatal("sort mode must never produce a restore-all set")
	}
	if !keep.Contains(language.English) {
		t.Fatalf("empty --keep during sort should coerce to English, got %s", keep.Label())
	}
}

func TestResolveKeepSetParsesExplicitValues(t *testing.T) {
	cfg := config.Default()

	keep, err := resolveKeepSet(reconcile.Sort, []string{"fr", "de"}, true, &cfg)
	if err != nil {
		t.Fatalf("resolveKeepSet: %v", err)
	}
	if !keep.Contains(language.French) || !keep.Contains(language.German) {
		t.Fatalf("expected fr and de, got %s", keep.Label())
	}
	if keep.Contains(language.English) {
		t.Fatalf("explicit values replace defaults, got %s", keep.Label())
	}
}

func TestResolveKeepSetRejectsUnknownTag(t *testing.T) {
	cfg := config.Default()

	if _, err := resolveKeepSet(reconcile.Sort, []string{"xx"}, true, &cfg); err == nil {
		t.Fatal("expected error for unknown language tag")
	}
}

func TestResolveKeepSetReportIgnoresKeep(t *testing.T) {
	cfg := config.Default()

	keep, err := resolveKeepSet(reconcile.Report, []string{"en"}, true, &cfg)
	if err != nil {
		t.Fatalf("resolveKeepSet: %v", err)
	}
	if keep.RestoresAll() || len(keep.Tags()) != 0 {
		t.Fatalf("report mode uses no keep-set, got %s", keep.Label())
	}
}
