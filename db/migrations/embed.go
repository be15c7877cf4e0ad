// Package migrations embeds the schema for every supported engine.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Dir returns the sub-directory holding migrations for driver.
func Dir(driver string) string {
	if driver == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
