package database

import "testing"

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"001_initial_schema.sql", 1},
		{"012_add_titles.sql", 12},
		{"abc_nope.sql", 0},
		{"ab.sql", 0},
		{"x", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := migrationVersion(tc.name); got != tc.expected {
				t.Errorf("migrationVersion(%q) = %d, want %d", tc.name, got, tc.expected)
			}
		})
	}
}
