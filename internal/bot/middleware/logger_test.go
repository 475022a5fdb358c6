package middleware

import (
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncate(t *testing.T) {
	Convey("로그용 문자열 자르기", t, func() {
		Convey("짧은 문자열은 그대로 둔다", func() {
			So(truncate("안녕하세요", 50), ShouldEqual, "안녕하세요")
		})

		Convey("긴 문자열은 50글자 + 말줄임표", func() {
			long := strings.Repeat("가", 80)
			got := truncate(long, 50)
			So(got, ShouldEqual, strings.Repeat("가", 50)+"...")
		})

		Convey("한글이 바이트 중간에서 잘리지 않는다", func() {
			long := strings.Repeat("제출합니다 ", 20)
			got := truncate(long, 50)
			So(utf8.ValidString(got), ShouldBeTrue)
			So([]rune(strings.TrimSuffix(got, "...")), ShouldHaveLength, 50)
		})

		Convey("정확히 경계 길이면 말줄임표를 붙이지 않는다", func() {
			exact := strings.Repeat("글", 50)
			So(truncate(exact, 50), ShouldEqual, exact)
		})
	})
}
