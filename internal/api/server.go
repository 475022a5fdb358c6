// Package api 는 제출물 조회용 읽기 전용 HTTP API 를 제공한다.
// 커뮤니티 웹 페이지의 글 검색이 이 API 를 쓴다.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

// Server 는 HTTP API 서버.
type Server struct {
	router     *mux.Router
	srv        *http.Server
	submission *submission.Service
}

// NewServer 는 API 서버를 만든다.
func NewServer(addr string, submissionSvc *submission.Service) *Server {
	s := &Server{
		router:     mux.NewRouter(),
		submission: submissionSvc,
	}
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(logMiddleware)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/contents", s.handleListContents).Methods("GET")
	api.HandleFunc("/contents/{id:[0-9]+}", s.handleGetContent).Methods("GET")
}

// Start 는 서버를 띄우고 리스닝 실패를 반환한다.
func (s *Server) Start() error {
	log.WithField("addr", s.srv.Addr).Info("HTTP API 시작")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 은 진행 중인 요청을 기다렸다가 서버를 내린다.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("HTTP 요청")
	})
}
