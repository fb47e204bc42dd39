package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// トップページのセクションAPI
type HomeHandler struct {
	uc *usecase.HomeUsecase
}

func NewHomeHandler(uc *usecase.HomeUsecase) *HomeHandler {
	return &HomeHandler{uc: uc}
}

func (h *HomeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/home", h.home)
}

func (h *HomeHandler) home(c echo.Context) error {
	out, err := h.uc.BuildHome(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
