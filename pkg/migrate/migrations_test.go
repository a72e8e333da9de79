package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/serpcat/serp-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestAlertsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_alerts_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS alerts",
		"CHECK (status IN ('Active', 'Pending', 'Solved', 'Archived'))",
		"CHECK (priority IN ('Critical', 'High', 'Medium', 'Low'))",
		"CHECK (emergency_type IN ('Fire', 'Medical', 'Accident', 'Natural Disaster', 'Other'))",
		"DROP TABLE IF EXISTS alerts",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAssignmentsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_assignments_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS assignments",
		"FOREIGN KEY (alert_id) REFERENCES alerts(id) ON DELETE CASCADE",
		"FOREIGN KEY (resource_id) REFERENCES resources(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_alert_resource",
		"DROP TABLE IF EXISTS assignments",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
