package telemetry

import (
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const queryStartKey = "telemetry:query_start"

// DBTracingConfig controls the GORM instrumentation.
type DBTracingConfig struct {
	Enabled bool
	DBName  string
	// WithQueryVariables includes bound statement values in span
	// attributes. Off by default so prices and seller data stay out of
	// the trace backend.
	WithQueryVariables bool
	// SlowQueryThreshold marks queries above it with a warning log.
	SlowQueryThreshold time.Duration
}

// DefaultDBTracingConfig returns the settings used by the server.
func DefaultDBTracingConfig(dbName string) DBTracingConfig {
	return DBTracingConfig{
		Enabled:            true,
		DBName:             dbName,
		SlowQueryThreshold: 200 * time.Millisecond,
	}
}

// RegisterDBTracing attaches the otelgorm plugin plus slow-query
// detection to the given GORM handle. Spans cover every statement the
// repositories issue, including the live membership count queries.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, log *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.WithQueryVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register gorm tracing plugin: %w", err)
	}

	if cfg.SlowQueryThreshold > 0 {
		if err := registerSlowQueryLogging(db, cfg.SlowQueryThreshold, log); err != nil {
			return err
		}
	}
	return nil
}

func registerSlowQueryLogging(db *gorm.DB, threshold time.Duration, log *zap.Logger) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if elapsed < threshold {
			return
		}
		log.Warn("Slow query",
			zap.Duration("elapsed", elapsed),
			zap.String("table", tx.Statement.Table),
			zap.Int64("rows", tx.Statement.RowsAffected),
		)
	}

	type hook struct {
		op     string
		before error
		after  error
	}
	hooks := []hook{
		{
			op:     "query",
			before: db.Callback().Query().Before("gorm:query").Register("marketplace:query_start", before),
			after:  db.Callback().Query().After("gorm:query").Register("marketplace:query_done", after),
		},
		{
			op:     "create",
			before: db.Callback().Create().Before("gorm:create").Register("marketplace:create_start", before),
			after:  db.Callback().Create().After("gorm:create").Register("marketplace:create_done", after),
		},
		{
			op:     "update",
			before: db.Callback().Update().Before("gorm:update").Register("marketplace:update_start", before),
			after:  db.Callback().Update().After("gorm:update").Register("marketplace:update_done", after),
		},
		{
			op:     "delete",
			before: db.Callback().Delete().Before("gorm:delete").Register("marketplace:delete_start", before),
			after:  db.Callback().Delete().After("gorm:delete").Register("marketplace:delete_done", after),
		},
		{
			op:     "row",
			before: db.Callback().Row().Before("gorm:row").Register("marketplace:row_start", before),
			after:  db.Callback().Row().After("gorm:row").Register("marketplace:row_done", after),
		},
		{
			op:     "raw",
			before: db.Callback().Raw().Before("gorm:raw").Register("marketplace:raw_start", before),
			after:  db.Callback().Raw().After("gorm:raw").Register("marketplace:raw_done", after),
		},
	}
	for _, h := range hooks {
		if h.before != nil {
			return fmt.Errorf("failed to register %s slow-query hook: %w", h.op, h.before)
		}
		if h.after != nil {
			return fmt.Errorf("failed to register %s slow-query hook: %w", h.op, h.after)
		}
	}
	return nil
}
