package usecase

import (
	"context"
	"net/http"

	"app/internal/cart"
	repo "app/internal/repository"
)

// CartUsecase はセッションカートの業務ロジック。
// カートはメモリ上のStoreが持ち、永続化しない。
type CartUsecase struct {
	store       *cart.Store
	productRepo repo.ProductRepository
}

func NewCartUsecase(store *cart.Store, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		store:       store,
		productRepo: productRepo,
	}
}

type CartResponse struct {
	Items         []cart.Line `json:"items"`
	TotalQuantity int64       `json:"total_quantity"`
	Total         int64       `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart は現在のカート内容（合計は都度再計算）。
func (u *CartUsecase) GetCart(sessionID string) CartResponse {
	return u.toResponse(u.store.Snapshot(sessionID))
}

// AddToCart はカートに追加（同一商品は数量加算）。
// 価格は追加時点のカタログ価格をスナップショットする。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	u.store.AddItem(sessionID, cart.Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
	}, in.Quantity)

	return u.toResponse(u.store.Snapshot(sessionID)), nil
}

// UpdateItem は数量を設定する。0以下で行ごと削除。
func (u *CartUsecase) UpdateItem(sessionID string, productID int64, qty int64) (CartResponse, error) {
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	u.store.UpdateQuantity(sessionID, productID, qty)
	return u.toResponse(u.store.Snapshot(sessionID)), nil
}

// RemoveItem は行を削除。無ければ何もしない。
func (u *CartUsecase) RemoveItem(sessionID string, productID int64) (CartResponse, error) {
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	u.store.RemoveItem(sessionID, productID)
	return u.toResponse(u.store.Snapshot(sessionID)), nil
}

// ClearCart はカートを空にする。
func (u *CartUsecase) ClearCart(sessionID string) CartResponse {
	u.store.Clear(sessionID)
	return u.toResponse(u.store.Snapshot(sessionID))
}

func (u *CartUsecase) toResponse(snap cart.Snapshot) CartResponse {
	return CartResponse{
		Items:         snap.Lines,
		TotalQuantity: snap.TotalQuantity,
		Total:         snap.TotalAmount,
	}
}
