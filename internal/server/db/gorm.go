package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MagedNabil/graphQL/internal/store"
)

type Config struct {
	// Dialect selects the backend: postgres, sqlite, or memory.
	Dialect string `conf:"dialect" yaml:"dialect" json:"dialect"`
	DSN     string `conf:"dsn"     yaml:"dsn"     json:"dsn"`
	Debug   bool   `conf:"debug"   yaml:"debug"   json:"debug"`
}

// Client owns the database handle and the store adapters built on it.
// The memory dialect carries no handle.
type Client struct {
	DB     *gorm.DB
	Stores store.Stores
}

func NewClient(cfg Config) *Client {
	if cfg.Dialect == "" || cfg.Dialect == "memory" {
		return &Client{Stores: store.NewMemory()}
	}

	var dialector gorm.Dialector

	switch cfg.Dialect {
	case "postgres", "pgx", "postgresdb", "pg", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite3", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		panic(fmt.Errorf("invalid dialect: %s", cfg.Dialect))
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		panic(err)
	}

	err = gdb.AutoMigrate(&store.User{}, &store.Post{}, &store.Comment{})
	if err != nil {
		panic(err)
	}

	return &Client{
		DB:     gdb,
		Stores: store.NewGorm(gdb),
	}
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}

	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
