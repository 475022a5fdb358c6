// Package admin — service.go 는 관리자 로그인과 권한 검사 로직이다.
// 비밀번호는 bcrypt 해시로만 보관하고, 실패가 쌓이면 잠시 잠근다.
package admin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

const (
	// 세션 유효 시간
	sessionTTL = 24 * time.Hour
	// 이 횟수만큼 연속 실패하면 잠금
	maxLoginFailures = 5
	// 실패 횟수를 세는 구간
	failureWindow = time.Hour
)

// SessionStore 는 세션/로그인 기록 저장소 인터페이스. *Repository 가 구현한다.
type SessionStore interface {
	CreateSession(ctx context.Context, s *Session) error
	LatestSession(ctx context.Context, memberID string) (*Session, error)
	RecordAttempt(ctx context.Context, memberID string, success bool) error
	CountRecentFailures(ctx context.Context, memberID string, since time.Time) (int, error)
}

// AdminChecker 는 관리자 여부 확인 인터페이스. members.Service 가 구현한다.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Service 는 관리자 인증 서비스.
type Service struct {
	store        SessionStore
	members      AdminChecker
	passwordHash string
	adminIDs     map[string]bool
	clock        common.Clock
}

// NewService 는 새 관리자 서비스를 만든다.
// adminIDs 는 설정의 관리자 목록으로, DB 의 is_admin 플래그와 함께 인정된다.
func NewService(store SessionStore, members AdminChecker, passwordHash string, adminIDs []string, clock common.Clock) *Service {
	ids := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = true
	}
	return &Service{
		store:        store,
		members:      members,
		passwordHash: passwordHash,
		adminIDs:     ids,
		clock:        clock,
	}
}

// isAdmin 은 설정 목록 또는 DB 플래그 기준으로 관리자인지 확인한다.
func (s *Service) isAdmin(ctx context.Context, userID string) (bool, error) {
	if s.adminIDs[userID] {
		return true, nil
	}
	return s.members.IsAdmin(ctx, userID)
}

// Login 은 관리자 비밀번호를 검증하고 새 세션을 만든다.
// 관리자가 아니면 ErrNotAdmin, 연속 실패가 쌓였으면 ErrTooManyAttempts,
// 비밀번호가 틀리면 ErrWrongPassword.
func (s *Service) Login(ctx context.Context, userID, password string) (*Session, error) {
	ok, err := s.isAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrNotAdmin
	}

	now := s.clock()
	failures, err := s.store.CountRecentFailures(ctx, userID, now.Add(-failureWindow))
	if err != nil {
		return nil, err
	}
	if failures >= maxLoginFailures {
		return nil, common.ErrTooManyAttempts
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		if recErr := s.store.RecordAttempt(ctx, userID, false); recErr != nil {
			log.WithError(recErr).Error("로그인 실패 기록 저장 실패")
		}
		log.WithFields(log.Fields{
			"member_id": userID,
			"failures":  failures + 1,
		}).Warn("관리자 로그인 실패")
		return nil, common.ErrWrongPassword
	}

	if err := s.store.RecordAttempt(ctx, userID, true); err != nil {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	session := &Session{
		MemberID:  userID,
		Token:     token,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	log.WithField("member_id", userID).Info("관리자 로그인 성공")
	return session, nil
}

// Authorize 는 관리자 명령 실행 전 권한을 확인한다.
// 관리자가 아니면 ErrNotAdmin, 세션이 없거나 만료면 ErrSessionExpired.
func (s *Service) Authorize(ctx context.Context, userID string) error {
	ok, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotAdmin
	}

	session, err := s.store.LatestSession(ctx, userID)
	if err != nil {
		return err
	}
	if session == nil || session.Expired(s.clock()) {
		return common.ErrSessionExpired
	}
	return nil
}

// newToken 은 32바이트 무작위 세션 토큰을 만든다.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("토큰 생성 실패: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
