// responsible for updating the database based on the files in the "migrations"-folder.
package dbMan

import (
	"database/sql"
	"path"
	"runtime"

	"github.com/Compufreak345/dbg"
	migrate "github.com/rubenv/sql-migrate"
)

const mdbTag = "gofuel-lib/migrateDb.go"

// ExecMigrations executes all existing migrations
func ExecMigrations(db *sql.DB) (int, error) {

	_, filename, _, _ := runtime.Caller(0)
	rootDir := path.Dir(filename)

	migrations := &migrate.FileMigrationSource{
		Dir: rootDir + "/migrations",
	}
	dbg.D(mdbTag, "migrations dir:", migrations.Dir)

	n, err := migrate.Exec(db, "sqlite3", migrations, migrate.Up)
	if err != nil {
		dbg.E(mdbTag, "Failed to migrate Database up() : ", err)
	}

	return n, err
}
