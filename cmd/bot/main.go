// Package main — 봇의 진입점.
// 설정을 읽고 애플리케이션을 초기화한 뒤 봇·스케줄러·API 를 띄운다.
// SIGINT/SIGTERM 으로 graceful shutdown 한다.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/app"
	"github.com/Daco2020/ttobot-sub000/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== 또봇 시작 중 ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("설정을 불러오지 못했어요")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	// graceful shutdown 용 취소 컨텍스트
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("애플리케이션 초기화 실패")
	}
	defer application.DB.Close()

	// cron 작업 시작
	application.Scheduler.Start(ctx)
	defer application.Scheduler.Stop()

	// 중지 시그널 처리 (Ctrl+C, docker stop)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 봇과 API 는 각자의 고루틴에서 돈다
	go func() {
		if err := application.Bot.Start(ctx); err != nil {
			log.WithError(err).Error("봇 종료")
		}
	}()
	go func() {
		if err := application.API.Start(); err != nil {
			log.WithError(err).Error("HTTP API 종료")
		}
	}()

	log.Info("=== 또봇 준비 완료 ===")

	sig := <-quit
	log.Infof("%s 시그널 수신, 멈추는 중...", sig)

	// 컨텍스트 취소 → 모든 고루틴이 정리를 시작한다
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := application.API.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP API 종료 중 오류")
	}

	log.Info("=== 또봇 멈춤 ===")
}

// setupLogging 은 로그 형식을 설정한다.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
