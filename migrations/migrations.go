// Package migrations embeds the goose SQL migrations for every relational driver.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/ghuser/barstock/pkg/config"
)

//go:embed postgres/*.sql mysql/*.sql
var files embed.FS

// ForDriver returns the migration directory for the given storage driver,
// rooted so that goose can read it with ".".
func ForDriver(storageDriver string) (fs.FS, error) {
	switch storageDriver {
	case config.DriverPostgres, config.DriverMySQL:
		return fs.Sub(files, storageDriver)
	default:
		return nil, fmt.Errorf("migrations: no migrations for storage driver %q", storageDriver)
	}
}
