package game

import (
	"crypto/rand"
)

// 房間代碼字元集：大寫字母與數字
const codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRoomCode 以 crypto/rand 產生 n 位房間代碼。
// 用拒絕採樣避免取模造成的字元分布偏差。
func NewRoomCode(n int) string {
	max := byte(255 - (256 % len(codeLetters)))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}

		for _, b := range buf {
			if b <= max {
				out = append(out, codeLetters[int(b)%len(codeLetters)])
				if len(out) == n {
					return string(out)
				}
			}
		}
	}

	return string(out)
}
