package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/ChemReactivity/internal/infrastructure/database/postgres"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/database/redis"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemReactivity/internal/interfaces/http/handlers"
)

// Adapters for HealthHandler.

type postgresHealthAdapter struct {
	conn *postgres.Connection
}

func (a *postgresHealthAdapter) Name() string {
	return "postgres"
}

func (a *postgresHealthAdapter) Check(ctx context.Context) error {
	return a.conn.HealthCheck(ctx)
}

type redisHealthAdapter struct {
	client *redis.Client
}

func (a *redisHealthAdapter) Name() string {
	return "redis"
}

func (a *redisHealthAdapter) Check(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// instrumentedChecker mirrors each probe result into the health gauge.
type instrumentedChecker struct {
	inner   handlers.HealthChecker
	metrics *prometheus.AppMetrics
}

func (c *instrumentedChecker) Name() string {
	return c.inner.Name()
}

func (c *instrumentedChecker) Check(ctx context.Context) error {
	err := c.inner.Check(ctx)
	status := 1.0
	if err != nil {
		status = 0
	}
	c.metrics.HealthCheckStatus.WithLabelValues(c.inner.Name()).Set(status)
	return err
}

// instrumentedPool wraps the pgx pool with query-duration observations.
type instrumentedPool struct {
	pool    *pgxpool.Pool
	metrics *prometheus.AppMetrics
}

func (p *instrumentedPool) observe(operation string, start time.Time) {
	p.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (p *instrumentedPool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	defer p.observe("exec", time.Now())
	return p.pool.Exec(ctx, sql, args...)
}

func (p *instrumentedPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	defer p.observe("query", time.Now())
	return p.pool.Query(ctx, sql, args...)
}

func (p *instrumentedPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	defer p.observe("query_row", time.Now())
	return p.pool.QueryRow(ctx, sql, args...)
}

// repoLogger bridges the repository package's key/value logger to the
// structured zap-backed Logger.
type repoLogger struct {
	l logging.Logger
}

func kvFields(keysAndValues []interface{}) []logging.Field {
	fields := make([]logging.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields = append(fields, logging.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func (r *repoLogger) Debug(msg string, keysAndValues ...interface{}) {
	r.l.Debug(msg, kvFields(keysAndValues)...)
}

func (r *repoLogger) Info(msg string, keysAndValues ...interface{}) {
	r.l.Info(msg, kvFields(keysAndValues)...)
}

func (r *repoLogger) Warn(msg string, keysAndValues ...interface{}) {
	r.l.Warn(msg, kvFields(keysAndValues)...)
}

func (r *repoLogger) Error(msg string, keysAndValues ...interface{}) {
	r.l.Error(msg, kvFields(keysAndValues)...)
}
