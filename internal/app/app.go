// Package app 은 애플리케이션의 모든 구성요소를 초기화한다.
// app.go 가 조립 지점이다: DB 풀, 레포지토리, 서비스, 핸들러, 필터를 만들어
// Bot / Scheduler / API 로 묶는다.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/Daco2020/ttobot-sub000/internal/api"
	"github.com/Daco2020/ttobot-sub000/internal/bot"
	"github.com/Daco2020/ttobot-sub000/internal/bot/filters"
	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/config"
	"github.com/Daco2020/ttobot-sub000/internal/db/postgres"
	"github.com/Daco2020/ttobot-sub000/internal/features/admin"
	"github.com/Daco2020/ttobot-sub000/internal/features/bookmark"
	"github.com/Daco2020/ttobot-sub000/internal/features/members"
	"github.com/Daco2020/ttobot-sub000/internal/features/points"
	"github.com/Daco2020/ttobot-sub000/internal/features/ranking"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
	"github.com/Daco2020/ttobot-sub000/internal/jobs"
)

// App 은 애플리케이션 구성요소 전체를 담는다.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	API       *api.Server
	DB        *pgxpool.Pool
}

// New 는 애플리케이션을 만들고 초기화한다.
// 구성요소끼리 서로 의존하므로 초기화 순서가 중요하다.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. 데이터베이스 ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("DB 연결 실패: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("마이그레이션 실패: %w", err)
	}

	// === 2. Slack 클라이언트 ===
	client := slack.New(
		cfg.SlackBotToken,
		slack.OptionAppLevelToken(cfg.SlackAppToken),
		slack.OptionDebug(cfg.AppEnv == "development"),
	)
	auth, err := client.AuthTestContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("Slack 인증 실패: %w", err)
	}
	log.Infof("@%s 로 인증됨", auth.User)

	socket := socketmode.New(client)

	// === 3. 회차 일정 ===
	sched, err := schedule.New(cfg.ScheduleDueDates)
	if err != nil {
		return nil, fmt.Errorf("회차 일정 구성 실패: %w", err)
	}

	clock := common.Clock(common.SeoulNow)

	// === 4. 레포지토리 ===
	memberRepo := members.NewRepository(pool)
	submissionRepo := submission.NewRepository(pool)
	pointsRepo := points.NewRepository(pool)
	rankingRepo := ranking.NewRepository(pool)
	bookmarkRepo := bookmark.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 5. 서비스 ===
	memberService := members.NewService(memberRepo)
	pointsService := points.NewService(points.NewTable(cfg), pointsRepo, memberService, clock)
	rankingService := ranking.NewService(rankingRepo, sched)
	submissionService := submission.NewService(
		submissionRepo, sched, pointsService, rankingService, memberService,
		cfg.MaxPassCount, clock,
	)
	bookmarkService := bookmark.NewService(bookmarkRepo, submissionService)
	adminService := admin.NewService(adminRepo, memberService, cfg.AdminPasswordHash, cfg.AdminIDs, clock)

	// === 6. 핸들러 ===
	submissionHandler := submission.NewHandler(submissionService, client)
	pointsHandler := points.NewHandler(pointsService, pointsRepo, client)
	rankingHandler := ranking.NewHandler(rankingService, client, clock)
	bookmarkHandler := bookmark.NewHandler(bookmarkService, client)
	adminHandler := admin.NewHandler(adminService, pointsService, client)

	// === 7. 필터 ===
	channelFilter := filters.NewChannelFilter(cfg.NoticeChannelID, memberService, client)

	// === 8. 봇 조립 ===
	b := bot.New(
		client, socket, cfg,
		memberService,
		submissionHandler,
		pointsHandler,
		rankingHandler,
		bookmarkHandler,
		adminHandler,
		channelFilter,
	)

	// === 9. 작업 스케줄러 ===
	scheduler := jobs.NewScheduler(
		sched, submissionService, memberService,
		cfg.NoticeChannelID,
		b.SendMessageToUser, b.SendMessageToChannel,
		clock,
	)

	// === 10. HTTP API ===
	apiServer := api.NewServer(cfg.APIListenAddr, submissionService)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		API:       apiServer,
		DB:        pool,
	}, nil
}

// runMigrations 는 모든 SQL 마이그레이션을 순서대로 적용한다.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Members},
		{2, migration002Contents},
		{3, migration003PointHistories},
		{4, migration004Bookmarks},
		{5, migration005Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("마이그레이션 %d: %w", m.version, err)
		}
		log.Infof("마이그레이션 %d 적용됨", m.version)
	}

	return nil
}

// SQL 마이그레이션은 배포를 단순하게 하려고 코드에 내장한다.

var migration001Members = `
CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) UNIQUE NOT NULL,
    name VARCHAR(255) NOT NULL,
    cohort VARCHAR(32) DEFAULT '',
    core_channel_id VARCHAR(32) DEFAULT '',
    is_admin BOOLEAN DEFAULT FALSE,
    deleted_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);
CREATE INDEX IF NOT EXISTS idx_members_core_channel ON members(core_channel_id);
`

var migration002Contents = `
CREATE TABLE IF NOT EXISTS contents (
    id BIGSERIAL PRIMARY KEY,
    member_id VARCHAR(32) NOT NULL,
    kind VARCHAR(16) NOT NULL,
    occurred_at TIMESTAMPTZ NOT NULL,
    content_url TEXT DEFAULT '',
    title TEXT DEFAULT '',
    category VARCHAR(64) DEFAULT '',
    tags TEXT DEFAULT '',
    curation BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_contents_member_id ON contents(member_id);
CREATE INDEX IF NOT EXISTS idx_contents_occurred_at ON contents(occurred_at);
CREATE INDEX IF NOT EXISTS idx_contents_kind ON contents(kind);
`

var migration003PointHistories = `
CREATE TABLE IF NOT EXISTS point_histories (
    id BIGSERIAL PRIMARY KEY,
    member_id VARCHAR(32) NOT NULL,
    amount INTEGER NOT NULL,
    reason TEXT NOT NULL,
    category VARCHAR(64) DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_point_histories_member_id ON point_histories(member_id);
CREATE INDEX IF NOT EXISTS idx_point_histories_created_at ON point_histories(created_at DESC);
`

var migration004Bookmarks = `
CREATE TABLE IF NOT EXISTS bookmarks (
    id BIGSERIAL PRIMARY KEY,
    member_id VARCHAR(32) NOT NULL,
    content_id BIGINT NOT NULL REFERENCES contents(id),
    status VARCHAR(16) NOT NULL,
    note TEXT DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_bookmarks_member_content ON bookmarks(member_id, content_id, created_at DESC);
`

var migration005Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    member_id VARCHAR(32) NOT NULL,
    token VARCHAR(255) UNIQUE NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_member ON admin_sessions(member_id, created_at DESC);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    member_id VARCHAR(32) NOT NULL,
    success BOOLEAN NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_admin_login_attempts_member ON admin_login_attempts(member_id, created_at DESC);
`
