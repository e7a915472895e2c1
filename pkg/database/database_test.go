package database

import "testing"

func TestGormConfig(t *testing.T) {
	cfg := gormConfig("release")
	if !cfg.TranslateError {
		t.Error("expected TranslateError to be enabled")
	}
	if !cfg.DisableForeignKeyConstraintWhenMigrating {
		t.Error("expected foreign key constraints to be skipped during migration")
	}
	if cfg.Logger == nil {
		t.Error("expected a configured logger")
	}
}
