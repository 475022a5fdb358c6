// Package members — service.go 는 멤버 관리 비즈니스 로직을 담당한다.
package members

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

// Service 는 멤버 명단을 관리한다.
type Service struct {
	repo *Repository
}

// NewService 는 새 멤버 서비스를 만든다.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// HandleNewMember 는 채널에 새로 들어온 사용자를 처리한다.
// 이미 등록된 멤버면 정보만 갱신한다.
func (s *Service) HandleNewMember(ctx context.Context, userID, name, cohort, channelID string) error {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		log.WithField("user_id", userID).Info("기존 멤버 재입장, 정보 갱신")
		return s.repo.UpdateInfo(ctx, userID, UpdateInfo{
			Name:          name,
			Cohort:        cohort,
			CoreChannelID: channelID,
		})
	}

	m := &Member{
		UserID:        userID,
		Name:          name,
		Cohort:        cohort,
		CoreChannelID: channelID,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return fmt.Errorf("새 멤버 등록 실패: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"name":    name,
	}).Info("새 멤버 등록")
	return nil
}

// Get 은 멤버를 찾는다. 없으면 ErrMemberNotFound.
func (s *Service) Get(ctx context.Context, userID string) (*Member, error) {
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.ErrMemberNotFound
	}
	return m, nil
}

// Exists 는 멤버가 등록되어 있는지 반환한다. points.MemberChecker 구현.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// IsAdmin 은 멤버가 관리자인지 반환한다.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return m != nil && m.IsAdmin, nil
}

// ListAll 은 전체 멤버 목록을 반환한다.
func (s *Service) ListAll(ctx context.Context) ([]*Member, error) {
	return s.repo.ListAll(ctx)
}
