//go:build ignore

// generate_hash.go — 관리자 비밀번호의 bcrypt 해시를 만드는 유틸리티.
// 실행: go run scripts/generate_hash.go <비밀번호>
//
// 결과를 .env 의 ADMIN_PASSWORD_HASH 에 넣으면 된다.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("사용법: go run scripts/generate_hash.go <비밀번호>")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("해시 생성 실패: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("ADMIN_PASSWORD_HASH=" + string(hash))
}
