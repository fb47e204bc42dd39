package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const cartSessionCookie = "cart_session"

// cartSessionID はカート用のセッションIDをcookieから取り出す。
// 無ければ新しく発行してcookieに積む。カート自体はメモリにしか無いので
// cookieはただの鍵で、中身は持たない。
func cartSessionID(c echo.Context) string {
	if ck, err := c.Cookie(cartSessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartSessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
