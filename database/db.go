package database

import (
	"context"
	"fmt"
	"log/slog"

	"festivalhub/internal/config"
	"festivalhub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB bundles the gorm handle with the pgx pool underneath it so both can be closed together.
type DB struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool
}

// Connect opens a pgx pool, hands it to gorm and applies the schema.
func Connect(ctx context.Context, cfg *config.Config, log *slog.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormLogLevel := logger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = logger.Info
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	if err := Migrate(ctx, gdb); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database_connected", "max_conns", poolCfg.MaxConns)
	return &DB{Gorm: gdb, Pool: pool}, nil
}

// activeTicketIndex keeps at most one non-rejected ticket per user and festival.
const activeTicketIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_ticket_active_owner
	ON tickets (user_id, festival_id) WHERE payment_status <> 'Rejected'`

// Migrate creates or updates every table the API owns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	err := db.AutoMigrate(
		&models.User{},
		&models.Festival{},
		&models.FestivalReview{},
		&models.Vendor{},
		&models.Ticket{},
		&models.Sale{},
		&models.Review{},
		&models.Booth{},
		&models.BoothAssignment{},
		&models.Event{},
		&models.MenuItem{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	return db.Exec(activeTicketIndex).Error
}

// Close releases the sql wrapper and the pool.
func (d *DB) Close() {
	if sqlDB, err := d.Gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
	d.Pool.Close()
}
