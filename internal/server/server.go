package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Product      *handler.ProductHandler
	Home         *handler.HomeHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
}

// New はルートを全部登録したEchoを返す。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	h.Product.RegisterRoutes(e)
	h.Home.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminProduct.RegisterRoutes(e, cfg)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
