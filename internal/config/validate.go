package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "warehouse.kind",
// "mongo.database"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is of error severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static validation of a Config. It does not mutate the
// config; it returns a slice of Issue values and callers decide whether to
// treat warnings as fatal.
func Validate(cfg Config) []Issue {
	var issues []Issue
	issues = append(issues, validateMongo(cfg.Mongo)...)
	issues = append(issues, validateWarehouse(cfg.Warehouse)...)
	issues = append(issues, validateRuntime(cfg.Runtime)...)
	return issues
}

func validateMongo(m Mongo) []Issue {
	var issues []Issue

	if strings.TrimSpace(m.Host) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "mongo.host",
			Message:  "MONGO_HOST must not be empty",
		})
	}
	if strings.TrimSpace(m.Database) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "mongo.database",
			Message:  "MONGO_DB must not be empty",
		})
	}
	if m.User != "" && m.Password == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "mongo.password",
			Message:  "MONGO_USER is set but MONGO_PASSWORD is empty",
		})
	}

	return issues
}

func validateWarehouse(w Warehouse) []Issue {
	var issues []Issue

	known := map[string]struct{}{
		"postgres": {},
		"sqlite":   {},
	}
	if _, ok := known[w.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "warehouse.kind",
			Message:  fmt.Sprintf("unknown warehouse kind %q; expected postgres or sqlite", w.Kind),
		})
		return issues
	}

	switch w.Kind {
	case "postgres":
		if strings.TrimSpace(w.Host) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "warehouse.host",
				Message:  "PG_HOST must not be empty",
			})
		}
		if strings.TrimSpace(w.Database) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "warehouse.database",
				Message:  "PG_DB must not be empty",
			})
		}
		if w.User != "" && w.Password == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "warehouse.password",
				Message:  "PG_USER is set but PG_PASSWORD is empty",
			})
		}
	case "sqlite":
		if strings.TrimSpace(w.SQLitePath) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "warehouse.sqlite_path",
				Message:  "DW_SQLITE_PATH must not be empty when DW_KIND is sqlite",
			})
		}
	}

	return issues
}

func validateRuntime(r Runtime) []Issue {
	var issues []Issue

	if r.BatchSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.batch_size",
			Message:  fmt.Sprintf("batch size must be positive, got %d", r.BatchSize),
		})
	} else if r.BatchSize > 100000 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "runtime.batch_size",
			Message:  fmt.Sprintf("batch size %d is unusually large; statements may exceed server limits", r.BatchSize),
		})
	}

	return issues
}
