// Package config 는 환경변수에서 봇 설정을 읽는다.
// envconfig 로 환경변수를 구조체 필드에 매핑한다.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 는 애플리케이션의 모든 설정을 담는다.
type Config struct {
	// --- Slack ---
	SlackBotToken string `envconfig:"SLACK_BOT_TOKEN" required:"true"`
	SlackAppToken string `envconfig:"SLACK_APP_TOKEN" required:"true"`
	// 공지 채널 (이모지 확인 이벤트를 감지하는 채널)
	NoticeChannelID string `envconfig:"NOTICE_CHANNEL_ID" required:"true"`
	// 관리자 Slack user ID 목록 (쉼표 구분)
	AdminIDsRaw string   `envconfig:"ADMIN_IDS" required:"true"`
	AdminIDs    []string `envconfig:"-"` // Load 에서 채움

	// --- Schedule ---
	// 회차 마감일 목록 (쉼표 구분, YYYY-MM-DD, 오름차순).
	// 예: "2024-09-29,2024-10-13,2024-10-27"
	ScheduleDueDatesRaw string      `envconfig:"SCHEDULE_DUE_DATES" required:"true"`
	ScheduleDueDates    []time.Time `envconfig:"-"` // Load 에서 채움

	// --- Database ---
	// Docker 컨테이너 안에서 "localhost" 는 거의 항상 틀리다.
	// 기본값은 docker-compose 서비스 이름, 로컬에서는 DB_HOST=localhost 로 덮어쓴다.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"ttobot"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"ttobot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Asia/Seoul"`

	// --- Bot runtime ---
	// 동시에 처리하는 이벤트 수 상한. 없으면 플러딩 시 고루틴이 무한정 늘어난다.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`

	// --- HTTP API ---
	APIListenAddr string `envconfig:"API_LISTEN_ADDR" default:":8080"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Pass ---
	MaxPassCount int `envconfig:"MAX_PASS_COUNT" default:"2"`

	// --- Points (보상표) ---
	PointSubmit           int `envconfig:"POINT_SUBMIT" default:"100"`
	PointAdditionalSubmit int `envconfig:"POINT_ADDITIONAL_SUBMIT" default:"10"`
	PointComboUnit        int `envconfig:"POINT_COMBO_UNIT" default:"10"`
	PointCombo3           int `envconfig:"POINT_COMBO_3" default:"300"`
	PointCombo6           int `envconfig:"POINT_COMBO_6" default:"600"`
	PointCombo9           int `envconfig:"POINT_COMBO_9" default:"900"`
	PointRankFirst        int `envconfig:"POINT_RANK_FIRST" default:"50"`
	PointRankSecond       int `envconfig:"POINT_RANK_SECOND" default:"30"`
	PointRankThird        int `envconfig:"POINT_RANK_THIRD" default:"20"`
	PointCurationRequest  int `envconfig:"POINT_CURATION_REQUEST" default:"20"`
	PointCurationSelected int `envconfig:"POINT_CURATION_SELECTED" default:"300"`
	PointConference       int `envconfig:"POINT_CONFERENCE" default:"50"`
	PointNoticeAck        int `envconfig:"POINT_NOTICE_ACK" default:"10"`
	PointIntroduction     int `envconfig:"POINT_INTRODUCTION" default:"100"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// DatabaseDSN 은 PostgreSQL 접속 문자열을 만든다.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Validate 는 설정값의 정합성을 검사한다.
func (c *Config) Validate() error {
	if len(c.ScheduleDueDates) == 0 {
		return fmt.Errorf("SCHEDULE_DUE_DATES 가 비어 있어요")
	}
	for i := 1; i < len(c.ScheduleDueDates); i++ {
		if !c.ScheduleDueDates[i].After(c.ScheduleDueDates[i-1]) {
			return fmt.Errorf("SCHEDULE_DUE_DATES 는 오름차순이어야 해요 (index %d)", i)
		}
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT 는 0보다 커야 해요")
	}
	if c.MaxPassCount < 0 {
		return fmt.Errorf("MAX_PASS_COUNT 는 음수일 수 없어요")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS/DB_MAX_CONNS 설정이 올바르지 않아요")
	}
	return nil
}

// Load 는 환경변수를 읽어 Config 를 채운다.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("설정을 불러오지 못했어요: %w", err)
	}

	cfg.AdminIDs = parseCSV(cfg.AdminIDsRaw)

	dates, err := parseDateCSV(cfg.ScheduleDueDatesRaw, cfg.AppTimezone)
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_DUE_DATES parse: %w", err)
	}
	cfg.ScheduleDueDates = dates

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDateCSV(s, tz string) ([]time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	var out []time.Time
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseInLocation("2006-01-02", p, loc)
		if err != nil {
			return nil, fmt.Errorf("잘못된 날짜 %q: %w", p, err)
		}
		out = append(out, d)
	}
	return out, nil
}
