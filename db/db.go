package db

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

// GetDB opens the configured database and runs migrations.
func GetDB(c *config.Config) (*GormDB, error) {
	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	var (
		gormDB *gorm.DB
		err    error
	)
	if c.UsesPostgres() {
		logger.Sugar.Infow("connecting to postgres", "host", c.PostgresHost, "db", c.PostgresDB)
		gormDB, err = openPostgres(c, gormConfig)
	} else {
		logger.Sugar.Infow("opening sqlite", "dsn", c.SQLiteDSN)
		gormDB, err = openSQLite(c.SQLiteDSN, gormConfig)
	}
	if err != nil {
		return nil, err
	}

	g := &GormDB{DB: gormDB}
	if err := migrate(g.DB); err != nil {
		return nil, err
	}
	return g, nil
}

// OpenSQLite opens and migrates an SQLite database, quietly. Used by tools and tests.
func OpenSQLite(dsn string) (*GormDB, error) {
	gormDB, err := openSQLite(dsn, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, err
	}
	g := &GormDB{DB: gormDB}
	if err := migrate(g.DB); err != nil {
		return nil, err
	}
	return g, nil
}

func openPostgres(c *config.Config, gormConfig *gorm.Config) (*gorm.DB, error) {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		return nil, errors.Wrap(err, "connect postgres")
	}
	return gormDB, nil
}

func openSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "sqlite handle")
	}
	// one connection keeps an in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	return gormDB, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.ViolationType{},
		&models.Reward{},
		&models.PointEntry{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (g *GormDB) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
