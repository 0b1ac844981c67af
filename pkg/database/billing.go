package database

import (
	"aigc-studio-mock-api/pkg/models"
)

const (
	orderTokenPrefix = "wx"
	orderTokenLength = 12
	defaultStorageGB = 10
	defaultPlanState = 1
)

// ListPlans 列出全部套餐，按 id 升序
func (db *MockDatabase) ListPlans() ([]models.Plan, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return sortedValues(db.st.plans), nil
}

// GetPlan 获取套餐
func (db *MockDatabase) GetPlan(planID int) (models.Plan, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, ok := db.st.plans[planID]
	if !ok {
		return models.Plan{}, notFound("Plan")
	}
	return p, nil
}

// CreatePlan 创建套餐。storage_gb 默认 10，is_active 默认 1
func (db *MockDatabase) CreatePlan(req models.PlanCreateRequest) (models.Plan, error) {
	if req.Name == "" || req.Price == nil || req.DurationDays == nil {
		return models.Plan{}, newError(ErrValidation, "name, price and duration_days are required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	storage := defaultStorageGB
	if req.StorageGB != nil {
		storage = *req.StorageGB
	}
	active := defaultPlanState
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := models.Plan{
		ID:             db.ids.next(kindPlans),
		Name:           req.Name,
		Description:    req.Description,
		Features:       req.Features,
		Price:          *req.Price,
		DurationDays:   *req.DurationDays,
		PlanType:       req.PlanType,
		MaxStoryboards: req.MaxStoryboards,
		StorageGB:      &storage,
		IsActive:       &active,
		CreatedAt:      db.now(),
	}
	db.st.plans[p.ID] = p
	db.persistLocked()
	return p, nil
}

// UpdatePlan 更新套餐
func (db *MockDatabase) UpdatePlan(planID int, req models.PlanUpdateRequest) (models.Plan, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.st.plans[planID]
	if !ok {
		return models.Plan{}, notFound("Plan")
	}
	req.Apply(&p)
	db.st.plans[planID] = p
	db.persistLocked()
	return p, nil
}

// DeletePlan 删除套餐。已有订阅保留原 plan_id
func (db *MockDatabase) DeletePlan(planID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.st.plans[planID]; !ok {
		return notFound("Plan")
	}
	delete(db.st.plans, planID)
	db.persistLocked()
	return nil
}

// Subscribe 为组织创建生效中的订阅
func (db *MockDatabase) Subscribe(orgID, planID int) (models.Subscription, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.st.plans[planID]; !ok {
		return models.Subscription{}, notFound("Plan")
	}
	sub := models.Subscription{
		ID:             db.ids.next(kindSubscriptions),
		OrganizationID: orgID,
		PlanID:         planID,
		Status:         models.StatusActive,
		CreatedAt:      db.now(),
	}
	db.st.subscriptions[sub.ID] = sub
	db.persistLocked()
	return sub, nil
}

// CreatePayment 创建待支付订单，返回订单与二维码链接
func (db *MockDatabase) CreatePayment(orgID int, req models.PaymentCreateRequest) (models.Payment, string, error) {
	if req.PlanType == "" {
		return models.Payment{}, "", newError(ErrValidation, "plan_type is required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	orderID := "ORDER_" + db.tokenSource.Token(orderTokenPrefix, orderTokenLength)
	codeURL := "weixin://wxpay/bizpayurl?pr=" + db.tokenSource.Token("qr", 8)
	p := models.Payment{
		OrderID:        orderID,
		OrganizationID: orgID,
		PlanType:       req.PlanType,
		Amount:         req.Amount,
		Status:         models.PaymentPending,
		CreatedAt:      db.now(),
	}
	db.st.payments[orderID] = p
	db.persistLocked()
	return p, codeURL, nil
}

// GetPayment 查询本组织订单
func (db *MockDatabase) GetPayment(orgID int, orderID string) (models.Payment, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, ok := db.st.payments[orderID]
	if !ok || p.OrganizationID != orgID {
		return models.Payment{}, notFound("Order")
	}
	return p, nil
}

// UpdatePaymentStatus 支付回调更新订单状态；未知订单忽略并返回 false
func (db *MockDatabase) UpdatePaymentStatus(orderID string, status models.PaymentStatus) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.st.payments[orderID]
	if !ok {
		return false
	}
	p.Status = status
	db.st.payments[orderID] = p
	db.persistLocked()
	return true
}
