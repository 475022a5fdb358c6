// Package postgres 는 PostgreSQL 연결을 관리한다.
// 여러 고루틴이 동시에 쓸 수 있도록 pgxpool 커넥션 풀을 사용한다.
//
// 풀이 연결의 열기/닫기, 끊김 시 재연결, 최대 연결 수 제한을 알아서 해준다.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/config"
)

// NewPool 은 PostgreSQL 커넥션 풀을 만든다.
// 연결 확인(ping)까지 끝내고 돌려준다.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("풀 생성 실패: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("데이터베이스에 접속할 수 없어요: %w", err)
	}

	log.Info("PostgreSQL 연결 완료")
	return pool, nil
}

// RunMigrations 는 마이그레이션 추적 테이블을 준비한다.
// 개별 마이그레이션 실행은 ExecMigrationSQL 이 담당한다.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("커넥션 획득 실패: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("마이그레이션 테이블 생성 실패: %w", err)
	}

	log.Info("마이그레이션 시스템 준비 완료")
	return nil
}
