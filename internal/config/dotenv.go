package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads local override env files before the yaml config is read.
// 우선순위는 OS 환경변수 > .env.local > .env 순이다 (godotenv는 이미 설정된
// 변수를 덮어쓰지 않는다). 실제로 읽은 파일 목록을 돌려준다.
func LoadDotEnv() []string {
	var loaded []string
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err == nil {
			loaded = append(loaded, name)
		}
	}
	return loaded
}
