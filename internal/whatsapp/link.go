package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://wa.me"

// BuildLink はメッセージ本文からチャットアプリへのディープリンクを作る。
// 宛先は数字以外を取り除いてから連結する。
// textパラメータをデコードすると元のメッセージとバイト単位で一致する。
func BuildLink(baseURL string, recipient string, message string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf(
		"%s/%s?text=%s",
		strings.TrimRight(baseURL, "/"),
		digitsOnly(recipient),
		url.QueryEscape(message),
	)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
