// Package common 은 프로젝트 전역에서 쓰는 유틸리티를 모아둔다.
// 시간대 처리(Asia/Seoul), 숫자/날짜 포맷팅이 여기에 있다.
package common

import (
	"fmt"
	"time"
)

// Clock 은 "지금"을 주입하기 위한 타입.
// 회차 계산이 벽시계를 직접 읽지 않아야 테스트가 결정적으로 돌아간다.
// 프로덕션에서는 SeoulNow 를 넘긴다.
type Clock func() time.Time

// SeoulLocation 은 프로그램 기준 시간대(Asia/Seoul)를 반환한다.
// 로드 실패 시 UTC+9 고정 시간대로 대체한다.
func SeoulLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// SeoulNow 는 현재 시각을 서울 시간대로 반환한다.
func SeoulNow() time.Time {
	return time.Now().In(SeoulLocation())
}

// DateOf 는 시각에서 날짜 부분만 잘라낸다 (서울 시간대 기준 자정).
// 회차 경계 비교는 전부 날짜 단위로 한다.
func DateOf(t time.Time) time.Time {
	t = t.In(SeoulLocation())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatPoints 는 포인트를 "100점" 형태로 포맷한다.
func FormatPoints(amount int) string {
	return fmt.Sprintf("%d점", amount)
}

// FormatDate 는 날짜를 "2024년 11월 24일" 형태로 포맷한다.
func FormatDate(t time.Time) string {
	t = t.In(SeoulLocation())
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// FormatDateTime 은 시각을 "2024-11-24 21:03" 형태로 포맷한다.
// 제출 이력, 포인트 내역 출력에 쓴다.
func FormatDateTime(t time.Time) string {
	return t.In(SeoulLocation()).Format("2006-01-02 15:04")
}

// FormatNumber 는 천 단위 구분자(쉼표)를 붙인다.
// 예: FormatNumber(2350) → "2,350"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatNumber(n/1000), n%1000)
}
