package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type database struct {
	db *gorm.DB
}

// New creates a new database connection
func New(ctx context.Context, dialect string, dsn string, config *gorm.Config) (Database, error) {
	if config == nil {
		config = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}

	var db *gorm.DB
	var err error

	if dialect == "sqlite" {
		db, err = gorm.Open(sqlite.Open(dsn), config)
	} else if dialect == "mysql" {
		db, err = gorm.Open(mysql.Open(dsn), config)
	} else {
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	if err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&App{},
	); err != nil {
		return nil, err
	}

	d := &database{
		db: db,
	}
	return d, nil
}

func (d *database) AppByDomain(domain string) (App, error) {
	app := App{}
	sql := d.db.Where("domain = ?", domain).Limit(1).Find(&app)
	return app, sql.Error
}

func (d *database) AppByID(id string) (App, error) {
	app := App{}
	sql := d.db.Where("id = ?", id).Limit(1).Find(&app)
	return app, sql.Error
}

func (d *database) AppsByOwner(ownerID string) ([]App, error) {
	var apps []App
	sql := d.db.Where("owner_id = ?", ownerID).Find(&apps)
	return apps, sql.Error
}

func (d *database) CreateApp(app *App) error {
	sql := d.db.Create(app)
	return sql.Error
}

func (d *database) UpdateApp(id string, fields map[string]interface{}) (App, error) {
	sql := d.db.Model(&App{}).Where("id = ?", id).Updates(fields)
	if sql.Error != nil {
		return App{}, sql.Error
	}
	return d.AppByID(id)
}

func (d *database) DeleteApp(id string) error {
	sql := d.db.Where("id = ?", id).Delete(&App{})
	return sql.Error
}

// IsDuplicateKey reports whether err came from a unique-index violation.
// Matched on the driver message because the sqlite and mysql drivers in use
// don't translate this into a typed error.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
