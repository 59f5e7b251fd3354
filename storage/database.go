package storage

import (
	"fmt"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var allModels = []interface{}{
	&User{}, &Question{}, &Choice{}, &Vote{}, &LoginAttempt{},
}

// OpenDatabase connects gorm to one of the supported drivers: sqlite, mysql or postgres.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: logger.New(logging.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		logging.Log.Errorf("DB: failed to open %s database: %v", driver, err)
		return nil, err
	}

	if driver == "sqlite" {
		// SQLite allows a single writer; one connection makes transactions queue
		// instead of failing with "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logging.Log.Infof("DB: connected using %s driver", driver)
	return db, nil
}

// Migrate creates or updates the tables for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels...); err != nil {
		logging.Log.Errorf("DB: auto-migrate failed: %v", err)
		return err
	}
	return backfillSearchText(db)
}

// backfillSearchText fills search_text for rows written before the column existed.
func backfillSearchText(db *gorm.DB) error {
	var batch []*Question
	res := db.Select("id", "question_text").
		Where("search_text = '' AND question_text <> ''").
		FindInBatches(&batch, 100, func(_ *gorm.DB, _ int) error {
			for _, q := range batch {
				err := db.Model(&Question{}).Where("id = ?", q.ID).
					UpdateColumn("search_text", foldText(q.Text)).Error
				if err != nil {
					return err
				}
			}
			return nil
		})
	if res.Error != nil {
		logging.Log.Errorf("DB: search text backfill failed: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected > 0 {
		logging.Log.Infof("DB: backfilled search text for %d questions", res.RowsAffected)
	}
	return nil
}
