package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentPayByScan      PaymentMethod = "pay_by_scan"
)

// 注文ヘッダ。明細は作成後に変更しない（statusだけ管理者が更新する）。
type Order struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CustomerName    string        `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone   string        `gorm:"type:varchar(50);index" json:"customer_phone"`
	CustomerAddress string        `gorm:"type:text" json:"customer_address"`
	Notes           string        `gorm:"type:text" json:"notes"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(30);not null" json:"payment_method"`
	TotalAmount     int64         `gorm:"not null" json:"total_amount"`
	IdempotencyKey  string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
