package models

// Plan тариф подписки.
type Plan struct {
	ID             string  `json:"id"`
	DurationMonths int     `json:"durationMonths"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
}

// PaymentLinkRequest запрос ссылки на оплату для пользователя.
// EmailOrID принимает email или числовой идентификатор пользователя.
type PaymentLinkRequest struct {
	PlanID      string `json:"planId" validate:"required"`
	EmailOrID   string `json:"emailOrId" validate:"required"`
	PromoCodeID string `json:"promoCodeId,omitempty"`
	ReturnURL   string `json:"returnUrl,omitempty" validate:"omitempty,url"`
	CancelURL   string `json:"cancelUrl,omitempty" validate:"omitempty,url"`
}

// PaymentLink ответ с адресом подтверждения платежа. Сам платёж не завершается.
type PaymentLink struct {
	ConfirmationURL string `json:"confirmationUrl"`
	PaymentID       string `json:"paymentId"`
}
