// Package common — errors.go 는 봇 전체 모듈에서 공유하는 에러를 정의한다.
// 핸들러는 이 에러들을 구분해서 사용자에게 그대로 보여줄 메시지를 고른다.
package common

import "errors"

// 일정(회차) 관련 에러
var (
	// ErrOutOfSchedule — 현재 시각이 마지막 마감일을 지남. 시즌 종료.
	ErrOutOfSchedule = errors.New("시즌이 종료되었어요. 다음 기수를 기다려주세요")
	// ErrEmptySchedule — 마감일 목록이 비어 있음 (설정 오류)
	ErrEmptySchedule = errors.New("제출 일정이 비어 있어요")
)

// 제출/패스 관련 에러
var (
	// ErrEmptyHistory — 제출 이력이 하나도 없음. 호출자는 "아직 제출 전"으로 처리한다.
	ErrEmptyHistory = errors.New("제출 이력이 없어요")
	// ErrNoPassesRemaining — 패스 횟수를 모두 사용함
	ErrNoPassesRemaining = errors.New("남은 패스가 없어요. 이미 2회 모두 사용했어요")
	// ErrConsecutivePass — 직전 회차에 이미 패스함. 연속 패스는 불가.
	ErrConsecutivePass = errors.New("연속으로 패스를 사용할 수 없어요")
)

// 포인트 관련 에러
var (
	// ErrMemberNotFound — 등록되지 않은 멤버. 포인트 장부의 무결성을 위해
	// 절대 조용히 무시하지 않는다.
	ErrMemberNotFound = errors.New("멤버 정보를 찾을 수 없어요")
	// ErrInvalidAmount — 0 이하의 포인트 지급 시도
	ErrInvalidAmount = errors.New("포인트는 1점 이상이어야 해요")
	// ErrUnknownRewardRule — 보상표에 없는 규칙 이름
	ErrUnknownRewardRule = errors.New("알 수 없는 보상 규칙이에요")
)

// 관리자 관련 에러
var (
	// ErrNotAdmin — 관리자 권한 없음
	ErrNotAdmin = errors.New("관리자 권한이 없어요")
	// ErrWrongPassword — 잘못된 관리자 비밀번호
	ErrWrongPassword = errors.New("비밀번호가 올바르지 않아요")
	// ErrTooManyAttempts — 로그인 시도 횟수 초과
	ErrTooManyAttempts = errors.New("로그인 시도가 너무 많아요. 1시간 후에 다시 시도해주세요")
	// ErrSessionExpired — 관리자 세션 만료
	ErrSessionExpired = errors.New("세션이 만료되었어요. 다시 로그인해주세요")
)

// 북마크 관련 에러
var (
	// ErrContentNotFound — 존재하지 않는 글
	ErrContentNotFound = errors.New("해당 글을 찾을 수 없어요")
	// ErrAlreadyBookmarked — 이미 북마크한 글
	ErrAlreadyBookmarked = errors.New("이미 북마크한 글이에요")
)
