package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Mongo: Mongo{
			User: "etl", Password: "pw",
			Host: "localhost", Port: "27017",
			Database: "shop", AuthSource: "admin",
		},
		Warehouse: Warehouse{
			Kind: "postgres",
			User: "dw", Password: "pw",
			Host: "localhost", Port: "5432",
			Database: "warehouse", SSLMode: "disable",
		},
		Runtime: Runtime{BatchSize: 1000},
	}
}

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, iss := range issues {
		if iss.Path == path {
			return iss, true
		}
	}
	return Issue{}, false
}

func TestValidateCleanConfig(t *testing.T) {
	issues := Validate(validConfig())
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestValidateMissingDatabases(t *testing.T) {
	cfg := validConfig()
	cfg.Mongo.Database = ""
	cfg.Warehouse.Database = ""

	issues := Validate(cfg)
	for _, path := range []string{"mongo.database", "warehouse.database"} {
		iss, ok := findIssue(issues, path)
		if !ok {
			t.Errorf("no issue at %s", path)
			continue
		}
		if iss.Severity != SeverityError {
			t.Errorf("%s severity = %s, want error", path, iss.Severity)
		}
	}
	if !HasErrors(issues) {
		t.Error("HasErrors = false")
	}
}

func TestValidateUnknownKind(t *testing.T) {
	cfg := validConfig()
	cfg.Warehouse.Kind = "oracle"

	issues := Validate(cfg)
	iss, ok := findIssue(issues, "warehouse.kind")
	if !ok {
		t.Fatal("no issue at warehouse.kind")
	}
	if iss.Severity != SeverityError {
		t.Errorf("severity = %s, want error", iss.Severity)
	}
	if !strings.Contains(iss.Message, "oracle") {
		t.Errorf("message %q should name the kind", iss.Message)
	}
}

func TestValidateSQLiteNeedsPath(t *testing.T) {
	cfg := validConfig()
	cfg.Warehouse.Kind = "sqlite"
	cfg.Warehouse.SQLitePath = ""

	issues := Validate(cfg)
	if _, ok := findIssue(issues, "warehouse.sqlite_path"); !ok {
		t.Error("no issue at warehouse.sqlite_path")
	}

	cfg.Warehouse.SQLitePath = "file:dw.db"
	if issues := Validate(cfg); HasErrors(issues) {
		t.Errorf("unexpected errors: %v", issues)
	}
}

func TestValidatePasswordWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.Mongo.Password = ""

	issues := Validate(cfg)
	iss, ok := findIssue(issues, "mongo.password")
	if !ok {
		t.Fatal("no issue at mongo.password")
	}
	if iss.Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning", iss.Severity)
	}
	if HasErrors(issues) {
		t.Error("warning alone should not count as error")
	}
}

func TestValidateBatchSize(t *testing.T) {
	cfg := validConfig()
	cfg.Runtime.BatchSize = 0

	issues := Validate(cfg)
	iss, ok := findIssue(issues, "runtime.batch_size")
	if !ok {
		t.Fatal("no issue at runtime.batch_size")
	}
	if iss.Severity != SeverityError {
		t.Errorf("severity = %s, want error", iss.Severity)
	}

	cfg.Runtime.BatchSize = 500000
	issues = Validate(cfg)
	iss, ok = findIssue(issues, "runtime.batch_size")
	if !ok {
		t.Fatal("no issue for oversized batch")
	}
	if iss.Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning", iss.Severity)
	}
}

func TestIssueError(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "mongo.host", Message: "must not be empty"}
	want := "error at mongo.host: must not be empty"
	if got := iss.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
