package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/cart"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/whatsapp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutConfig はメッセージとリンク生成に必要な店舗側の設定。
type CheckoutConfig struct {
	StoreName       string
	Currency        string // 例: "Rs"
	WhatsAppNumber  string
	WhatsAppBaseURL string
}

// CheckoutUsecase はカートのスナップショットを注文として確定する。
// ヘッダと明細は1トランザクションで書く。
type CheckoutUsecase struct {
	tx     repo.TransactionManager
	cfg    CheckoutConfig
	logger *zap.Logger
}

func NewCheckoutUsecase(tx repo.TransactionManager, cfg CheckoutConfig, logger *zap.Logger) *CheckoutUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutUsecase{tx: tx, cfg: cfg, logger: logger}
}

type CheckoutItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CheckoutInput struct {
	Items           []CheckoutItem
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Notes           string
	PaymentMethod   string
	IdempotencyKey  string
}

type CheckoutOutput struct {
	OrderID     int64  `json:"order_id"`
	WhatsAppURL string `json:"whatsapp_url"`
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	Status          string            `json:"status"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress string            `json:"customer_address"`
	Notes           string            `json:"notes"`
	PaymentMethod   string            `json:"payment_method"`
	TotalAmount     int64             `json:"total_amount"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// ItemsFromSnapshot はセッションカートのスナップショットをチェックアウト入力に変換する。
func ItemsFromSnapshot(snap cart.Snapshot) []CheckoutItem {
	items := make([]CheckoutItem, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, CheckoutItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return items
}

// PlaceOrder は注文を確定し、注文IDとWhatsAppリンクを返す。
// 合計は必ずサーバ側で明細から再計算する（クライアントの合計は信用しない）。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, in CheckoutInput) (CheckoutOutput, error) {
	if len(in.Items) == 0 {
		return CheckoutOutput{}, &ValidationError{Field: "items", Message: "cart is empty"}
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return CheckoutOutput{}, &ValidationError{Field: "customer_phone", Message: "required"}
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return CheckoutOutput{}, &ValidationError{Field: "items", Message: "invalid product_id"}
		}
		if it.Quantity < 1 {
			return CheckoutOutput{}, &ValidationError{Field: "items", Message: "invalid quantity"}
		}
		if it.UnitPrice < 0 {
			return CheckoutOutput{}, &ValidationError{Field: "items", Message: "invalid price"}
		}
	}

	method, ok := resolvePaymentMethod(in.PaymentMethod)
	if !ok {
		return CheckoutOutput{}, &ValidationError{Field: "payment_method", Message: "unknown payment method"}
	}

	// 二重送信対策。キー未指定なら毎回新しいキー（＝常に新規注文）。
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	order, orderItems := composeOrder(in, method, key)

	var (
		persisted model.Order
		lines     []model.OrderItem
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら既存の注文をそのまま返す
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return &PersistenceError{Op: "find order by idempotency key", Err: err}
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return &PersistenceError{Op: "list order items", Err: err}
			}
			persisted = existing
			lines = items
			return nil
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return &PersistenceError{Op: "create order", Err: err}
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			// Txごとロールバックされるのでヘッダは残らない
			return &PartialWriteError{
				PersistenceError: PersistenceError{Op: "create order items", Err: err},
				OrderID:          orderID,
			}
		}

		order.ID = orderID
		persisted = order
		lines = orderItems
		return nil
	})

	if err != nil {
		return CheckoutOutput{}, err
	}

	// リンクは「保存したものと同じスナップショット」から作る
	out := CheckoutOutput{
		OrderID:     persisted.ID,
		WhatsAppURL: u.buildWhatsAppURL(persisted, lines),
	}

	u.logger.Info("order placed",
		zap.Int64("order_id", persisted.ID),
		zap.Int64("total_amount", persisted.TotalAmount),
		zap.Int("item_count", len(lines)),
	)

	return out, nil
}

// GetOrder は注文の読み直し。確定後の状態はローカルに持たず毎回DBから引く。
func (u *CheckoutUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return &PersistenceError{Op: "find order", Err: err}
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return &PersistenceError{Op: "list order items", Err: err}
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// composeOrder は入力から注文ヘッダと明細を組み立てる純粋関数。
// ステータスは常に pending で作る。
func composeOrder(in CheckoutInput, method model.PaymentMethod, key string) (model.Order, []model.OrderItem) {
	now := time.Now()

	items := make([]model.OrderItem, 0, len(in.Items))
	var total int64 = 0
	for _, it := range in.Items {
		lineTotal := it.UnitPrice * it.Quantity
		items = append(items, model.OrderItem{
			ProductID:           it.ProductID,
			ProductNameSnapshot: it.Name,
			UnitPriceSnapshot:   it.UnitPrice,
			Quantity:            it.Quantity,
			LineTotal:           lineTotal,
			CreatedAt:           now,
		})
		total += lineTotal
	}

	order := model.Order{
		Status:          model.OrderStatusPending,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		Notes:           strings.TrimSpace(in.Notes),
		PaymentMethod:   method,
		TotalAmount:     total,
		IdempotencyKey:  key,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return order, items
}

func (u *CheckoutUsecase) buildWhatsAppURL(o model.Order, items []model.OrderItem) string {
	msgItems := make([]whatsapp.Item, 0, len(items))
	for _, it := range items {
		msgItems = append(msgItems, whatsapp.Item{
			Name:      it.ProductNameSnapshot,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal,
		})
	}

	msg := whatsapp.ComposeMessage(whatsapp.MessageInput{
		StoreName: u.cfg.StoreName,
		Currency:  u.cfg.Currency,
		Items:     msgItems,
		Total:     o.TotalAmount,
		Buyer: whatsapp.Buyer{
			Name:    o.CustomerName,
			Phone:   o.CustomerPhone,
			Address: o.CustomerAddress,
			Notes:   o.Notes,
		},
		PaymentLabel: paymentLabel(o.PaymentMethod),
	})

	return whatsapp.BuildLink(u.cfg.WhatsAppBaseURL, u.cfg.WhatsAppNumber, msg)
}

func resolvePaymentMethod(s string) (model.PaymentMethod, bool) {
	switch strings.TrimSpace(s) {
	case "":
		return model.PaymentCashOnDelivery, true
	case string(model.PaymentCashOnDelivery):
		return model.PaymentCashOnDelivery, true
	case string(model.PaymentPayByScan):
		return model.PaymentPayByScan, true
	default:
		return "", false
	}
}

func paymentLabel(m model.PaymentMethod) string {
	switch m {
	case model.PaymentPayByScan:
		return "Pay by scan"
	default:
		return "Cash on delivery"
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		Status:          string(o.Status),
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Notes:           o.Notes,
		PaymentMethod:   string(o.PaymentMethod),
		TotalAmount:     o.TotalAmount,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
