package store

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the configured database. SQLite runs on the pure-Go
// modernc driver with foreign keys enforced; timestamps are always UTC.
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		if strings.TrimSpace(dsn) == "" {
			return nil, fmt.Errorf("sqlite dsn is empty")
		}
		return gorm.Open(sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        sqliteDSN(dsn),
		}, cfg)
	case DriverPostgres:
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
