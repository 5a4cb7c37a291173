package models

import "time"

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnRefunded  TransactionStatus = "refunded"
)

// Transaction mirrors the booking outcome for payment tracking. It is
// never mutated directly by handlers; only the lifecycle engine writes it.
type Transaction struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	BookingID    uint              `gorm:"not null;index" json:"booking_id"`
	Amount       int64             `gorm:"not null" json:"amount"`
	Status       TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RefundAmount int64             `gorm:"not null;default:0" json:"refund_amount"`
	RefundedAt   *time.Time        `json:"refunded_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type PaymentState string

const (
	PayPending   PaymentState = "pending"
	PaySucceeded PaymentState = "succeeded"
	PayFailed    PaymentState = "failed"
)

// Payment is the second mirror record, kept consistent with Transaction.
type Payment struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	BookingID uint         `gorm:"not null;index" json:"booking_id"`
	Status    PaymentState `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt    *time.Time   `json:"paid_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
