package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DiscountType дискриминатор скидки промокода. Значения согласованы с бэкендом.
type DiscountType string

const (
	// DiscountRUB фиксированная скидка в рублях.
	DiscountRUB DiscountType = "RUB"
	// DiscountPercent скидка в процентах, от 1 до 100.
	DiscountPercent DiscountType = "PERCENT"
)

// Discount описывает скидку: тип определяет смысл Value.
type Discount struct {
	Type  DiscountType `json:"discountType" validate:"required,oneof=RUB PERCENT"`
	Value float64      `json:"discountValue"`
}

// Label человекочитаемое представление скидки: "10%" или "500 ₽".
func (d Discount) Label() string {
	v := strconv.FormatFloat(d.Value, 'f', -1, 64)
	switch d.Type {
	case DiscountPercent:
		return v + "%"
	case DiscountRUB:
		return v + " ₽"
	default:
		return v
	}
}

// PromoCode промокод в списке.
type PromoCode struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Discount
	ValidFrom     time.Time `json:"validFrom"`
	ValidUntil    time.Time `json:"validUntil"`
	CreatedAt     time.Time `json:"createdAt"`
	PaymentsCount int       `json:"paymentsCount"`
}

// UnmarshalJSON понимает и старый формат, где скидка была только в рублях (discountRubles).
func (p *PromoCode) UnmarshalJSON(data []byte) error {
	type alias PromoCode
	aux := struct {
		*alias
		DiscountRubles *float64 `json:"discountRubles"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.Type == "" && aux.DiscountRubles != nil {
		p.Type = DiscountRUB
		p.Value = *aux.DiscountRubles
	}
	return nil
}

// IsActive сообщает, действует ли промокод на момент now.
func (p PromoCode) IsActive(now time.Time) bool {
	return !now.Before(p.ValidFrom) && now.Before(p.ValidUntil)
}

// CreatePromoCodeRequest тело запроса создания промокода.
type CreatePromoCodeRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
	Discount
	ValidUntil string `json:"validUntil" validate:"required"`
}

// Normalize приводит код к верхнему регистру и убирает пробелы по краям.
func (r CreatePromoCodeRequest) Normalize() CreatePromoCodeRequest {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	r.ValidUntil = strings.TrimSpace(r.ValidUntil)
	return r
}

// PlanUsage использование промокода по тарифу.
type PlanUsage struct {
	PlanID string `json:"planId"`
	Count  int    `json:"count"`
}

// PromoStats статистика использования промокода.
type PromoStats struct {
	Code           string      `json:"code"`
	UsersCount     int         `json:"usersCount"`
	PaymentsCount  int         `json:"paymentsCount"`
	ByPlan         []PlanUsage `json:"byPlan"`
	TotalAmountRub float64     `json:"totalAmountRub"`
}

func (s PromoStats) String() string {
	return fmt.Sprintf("%s: users=%d payments=%d total=%.2f", s.Code, s.UsersCount, s.PaymentsCount, s.TotalAmountRub)
}
