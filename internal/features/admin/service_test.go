package admin

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

type fakeStore struct {
	sessions []*Session
	attempts []bool
}

func (f *fakeStore) CreateSession(_ context.Context, s *Session) error {
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeStore) LatestSession(_ context.Context, memberID string) (*Session, error) {
	for i := len(f.sessions) - 1; i >= 0; i-- {
		if f.sessions[i].MemberID == memberID {
			return f.sessions[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) RecordAttempt(_ context.Context, _ string, success bool) error {
	f.attempts = append(f.attempts, success)
	return nil
}

func (f *fakeStore) CountRecentFailures(_ context.Context, _ string, _ time.Time) (int, error) {
	count := 0
	for i := len(f.attempts) - 1; i >= 0; i-- {
		if f.attempts[i] {
			break
		}
		count++
	}
	return count, nil
}

type fakeAdmins struct {
	admins map[string]bool
}

func (f *fakeAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	return f.admins[userID], nil
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("비밀번호123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 11, 25, 10, 0, 0, 0, common.SeoulLocation())
	clock := func() time.Time { return now }

	Convey("관리자 로그인", t, func() {
		store := &fakeStore{}
		admins := &fakeAdmins{admins: map[string]bool{"U_ADMIN": true}}
		svc := NewService(store, admins, string(hash), nil, clock)

		Convey("올바른 비밀번호면 세션이 만들어진다", func() {
			session, err := svc.Login(ctx, "U_ADMIN", "비밀번호123")
			So(err, ShouldBeNil)
			So(session.Token, ShouldNotBeEmpty)
			So(session.ExpiresAt, ShouldEqual, now.Add(24*time.Hour))
			So(store.sessions, ShouldHaveLength, 1)
		})

		Convey("틀린 비밀번호면 ErrWrongPassword, 실패가 기록된다", func() {
			_, err := svc.Login(ctx, "U_ADMIN", "틀린비밀번호")
			So(err, ShouldEqual, common.ErrWrongPassword)
			So(store.attempts, ShouldResemble, []bool{false})
			So(store.sessions, ShouldBeEmpty)
		})

		Convey("관리자가 아니면 ErrNotAdmin", func() {
			_, err := svc.Login(ctx, "U_NOBODY", "비밀번호123")
			So(err, ShouldEqual, common.ErrNotAdmin)
		})

		Convey("설정 목록의 관리자도 인정된다", func() {
			svc := NewService(store, admins, string(hash), []string{"U_CONFIG"}, clock)
			session, err := svc.Login(ctx, "U_CONFIG", "비밀번호123")
			So(err, ShouldBeNil)
			So(session, ShouldNotBeNil)
		})

		Convey("연속 5회 실패하면 잠긴다", func() {
			for i := 0; i < 5; i++ {
				_, err := svc.Login(ctx, "U_ADMIN", "틀린비밀번호")
				So(err, ShouldEqual, common.ErrWrongPassword)
			}
			_, err := svc.Login(ctx, "U_ADMIN", "비밀번호123")
			So(err, ShouldEqual, common.ErrTooManyAttempts)
		})

		Convey("성공 기록이 실패 카운트를 초기화한다", func() {
			for i := 0; i < 4; i++ {
				svc.Login(ctx, "U_ADMIN", "틀린비밀번호")
			}
			_, err := svc.Login(ctx, "U_ADMIN", "비밀번호123")
			So(err, ShouldBeNil)
			_, err = svc.Login(ctx, "U_ADMIN", "틀린비밀번호")
			So(err, ShouldEqual, common.ErrWrongPassword)
		})
	})
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 11, 25, 10, 0, 0, 0, common.SeoulLocation())
	clock := func() time.Time { return now }

	Convey("관리자 권한 확인", t, func() {
		store := &fakeStore{}
		admins := &fakeAdmins{admins: map[string]bool{"U_ADMIN": true}}
		svc := NewService(store, admins, "", nil, clock)

		Convey("세션이 없으면 ErrSessionExpired", func() {
			So(svc.Authorize(ctx, "U_ADMIN"), ShouldEqual, common.ErrSessionExpired)
		})

		Convey("유효한 세션이 있으면 통과한다", func() {
			store.sessions = append(store.sessions, &Session{
				MemberID:  "U_ADMIN",
				Token:     "token",
				ExpiresAt: now.Add(time.Hour),
			})
			So(svc.Authorize(ctx, "U_ADMIN"), ShouldBeNil)
		})

		Convey("만료된 세션이면 ErrSessionExpired", func() {
			store.sessions = append(store.sessions, &Session{
				MemberID:  "U_ADMIN",
				Token:     "token",
				ExpiresAt: now.Add(-time.Minute),
			})
			So(svc.Authorize(ctx, "U_ADMIN"), ShouldEqual, common.ErrSessionExpired)
		})

		Convey("관리자가 아니면 ErrNotAdmin", func() {
			So(svc.Authorize(ctx, "U_NOBODY"), ShouldEqual, common.ErrNotAdmin)
		})
	})
}
