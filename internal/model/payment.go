package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusApproved PaymentStatus = "Approved"
	PaymentStatusRejected PaymentStatus = "Rejected"
)

// ValidStatus reports whether s is one of the three persisted status values.
func ValidStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

type Payment struct {
	ID            int64         `gorm:"primaryKey;autoIncrement;column:id;<-:create" json:"id"`
	ClientName    string        `gorm:"column:client_name;not null" json:"client_name"`
	Phone         string        `gorm:"column:phone;not null" json:"phone"`
	Amount        float64       `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	RMName        string        `gorm:"column:rm_name;not null;default:''" json:"rm_name"`
	ScreenshotURL string        `gorm:"column:screenshot_url;not null;default:''" json:"screenshot_url"`
	Status        PaymentStatus `gorm:"column:status;type:varchar(20);not null;default:'Pending';check:chk_payments_status,status IN ('Pending','Approved','Rejected')" json:"status"`
	CreatedAt     time.Time     `gorm:"column:created_at;<-:create" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
