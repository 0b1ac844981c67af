package models

import (
	"time"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
)

// PaymentStatus is the state of a payment order. The callback may set any string.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Plan is a global billing catalog entry.
type Plan struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	Features       *string   `json:"features"`
	Price          int       `json:"price"`
	DurationDays   int       `json:"duration_days"`
	PlanType       *string   `json:"plan_type"`
	MaxStoryboards *int      `json:"max_storyboards"`
	StorageGB      *int      `json:"storage_gb"`
	IsActive       *int      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlanCreateRequest 创建套餐请求
type PlanCreateRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Features       *string `json:"features"`
	Price          *int    `json:"price"`
	DurationDays   *int    `json:"duration_days"`
	PlanType       *string `json:"plan_type"`
	MaxStoryboards *int    `json:"max_storyboards"`
	StorageGB      *int    `json:"storage_gb"`
	IsActive       *int    `json:"is_active"`
}

// PlanUpdateRequest 更新套餐请求
type PlanUpdateRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Features       *string `json:"features"`
	Price          *int    `json:"price"`
	DurationDays   *int    `json:"duration_days"`
	PlanType       *string `json:"plan_type"`
	MaxStoryboards *int    `json:"max_storyboards"`
	StorageGB      *int    `json:"storage_gb"`
	IsActive       *int    `json:"is_active"`
}

// Apply overwrites the provided fields.
func (r *PlanUpdateRequest) Apply(p *Plan) {
	setString(&p.Name, r.Name)
	setOptional(&p.Description, r.Description)
	setOptional(&p.Features, r.Features)
	setInt(&p.Price, r.Price)
	setInt(&p.DurationDays, r.DurationDays)
	setOptional(&p.PlanType, r.PlanType)
	setOptionalInt(&p.MaxStoryboards, r.MaxStoryboards)
	setOptionalInt(&p.StorageGB, r.StorageGB)
	setOptionalInt(&p.IsActive, r.IsActive)
}

// Subscription links an organization to a catalog plan.
type Subscription struct {
	ID             int                `json:"id"`
	OrganizationID int                `json:"organization_id"`
	PlanID         int                `json:"plan_id"`
	Status         SubscriptionStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Payment is a WeChat Pay order, keyed by OrderID.
type Payment struct {
	OrderID        string        `json:"order_id"`
	OrganizationID int           `json:"organization_id"`
	PlanType       string        `json:"plan_type"`
	Amount         int           `json:"amount"`
	Status         PaymentStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// PaymentCreateRequest 创建支付订单请求
type PaymentCreateRequest struct {
	PlanType string `json:"plan_type"`
	Amount   int    `json:"amount"`
}

// PaymentStatusResponse 订单状态查询响应
type PaymentStatusResponse struct {
	OrderID string        `json:"order_id"`
	Status  PaymentStatus `json:"status"`
}

// WechatRequestSummary mirrors the native-pay request a real gateway call would send.
type WechatRequestSummary struct {
	URL      string                 `json:"url"`
	Method   string                 `json:"method"`
	Headers  map[string]string      `json:"headers"`
	Body     map[string]interface{} `json:"body"`
	Response map[string]interface{} `json:"response"`
	CodeURL  string                 `json:"code_url"`
}

// PaymentCreateResponse 创建订单响应
type PaymentCreateResponse struct {
	OrderID              string               `json:"order_id"`
	QRCodeURL            string               `json:"qrcode_url"`
	WechatRequestSummary WechatRequestSummary `json:"wechat_request_summary"`
}

// PaymentCallbackRequest is the unsigned gateway notification.
type PaymentCallbackRequest struct {
	OrderID string  `json:"order_id"`
	Status  *string `json:"status"`
}

func setOptionalInt(dst **int, v *int) {
	if v != nil {
		n := *v
		*dst = &n
	}
}
