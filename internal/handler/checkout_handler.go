package handler

import (
	"net/http"
	"strconv"

	"app/internal/cart"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout と /orders/:id のHTTP
type CheckoutHandler struct {
	uc    *usecase.CheckoutUsecase
	store *cart.Store
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase, store *cart.Store) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, store: store}
}

type CheckoutRequest struct {
	Items           []usecase.CheckoutItem `json:"items"`
	CustomerName    string                 `json:"customer_name"`
	CustomerPhone   string                 `json:"customer_phone"`
	CustomerAddress string                 `json:"customer_address"`
	Notes           string                 `json:"notes"`
	PaymentMethod   string                 `json:"payment_method"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkout", h.checkout)
	e.GET("/orders/:id", h.orderDetail)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	sessionID := cartSessionID(c)

	// 明細はbody指定があればそれを使い、無ければセッションカートのスナップショット。
	// どちらでも合計はusecaseが再計算する。
	items := req.Items
	if len(items) == 0 {
		items = usecase.ItemsFromSnapshot(h.store.Snapshot(sessionID))
	}

	// 二重送信防止キーはヘッダーから受け取る（bodyには入れない）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.CheckoutInput{
		Items:           items,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		IdempotencyKey:  idemKey,
	})
	if err != nil {
		// 失敗時はカートを残す（再入力させない）
		return writeError(c, err)
	}

	// 成功が確定してからカートを空にする
	h.store.Clear(sessionID)

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) orderDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
