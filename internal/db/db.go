package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a connected GORM DB instance. DSNs starting with
// postgres:// or postgresql:// use PostgreSQL, anything else MySQL.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", Driver(dsn), err)
	}
	return db, nil
}

// Dialector picks the GORM dialector for dsn.
func Dialector(dsn string) gorm.Dialector {
	if Driver(dsn) == "postgres" {
		return postgres.Open(dsn)
	}
	return mysql.Open(dsn)
}

// Driver names the database engine a DSN points at.
func Driver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "mysql"
}
