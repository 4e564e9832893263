package models

import "time"

// UserSubscription краткий срез подписки пользователя.
type UserSubscription struct {
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"currentPeriodEnd"`
	ProductID          *string    `json:"productId"`
	Store              *string    `json:"store,omitempty"`
}

// UserListItem пользователь в списке.
type UserListItem struct {
	ID           int64             `json:"id"`
	Email        *string           `json:"email"`
	Name         string            `json:"name"`
	PhoneE164    *string           `json:"phoneE164"`
	CreatedAt    time.Time         `json:"createdAt"`
	PremiumUntil *time.Time        `json:"premiumUntil"`
	TrialUntil   *time.Time        `json:"trialUntil"`
	BlockedUntil *time.Time        `json:"blockedUntil"`
	BlockReason  *string           `json:"blockReason"`
	Subscription *UserSubscription `json:"subscription"`
}

// IsBlocked сообщает, заблокирован ли пользователь на момент now.
func (u UserListItem) IsBlocked(now time.Time) bool {
	return u.BlockedUntil != nil && u.BlockedUntil.After(now)
}

// SubscriptionHistoryItem запись истории действий с подпиской.
type SubscriptionHistoryItem struct {
	Action    string    `json:"action"`
	Details   *string   `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockHistoryItem запись истории блокировок.
type BlockHistoryItem struct {
	BlockedAt    time.Time  `json:"blockedAt"`
	BlockedUntil *time.Time `json:"blockedUntil"`
	Reason       *string    `json:"reason"`
	UnblockedAt  *time.Time `json:"unblockedAt"`
}

// UserDetail полная карточка пользователя.
type UserDetail struct {
	UserListItem
	DeletionRequestedAt *time.Time                `json:"deletionRequestedAt"`
	ScheduledDeleteAt   *time.Time                `json:"scheduledDeleteAt"`
	SubscriptionHistory []SubscriptionHistoryItem `json:"subscriptionHistory"`
	BlockHistory        []BlockHistoryItem        `json:"blockHistory"`
}

// UsersFilter параметры выборки списка пользователей.
// Пустой Search и nil UserID не отправляются на бэкенд.
type UsersFilter struct {
	Search string
	UserID *int64
	Page   int
	Limit  int
}

// UsersPage страница списка пользователей с метаданными пагинации.
type UsersPage struct {
	Items []UserListItem `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// TotalPages количество страниц при текущем лимите.
func (p UsersPage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// BlockUserRequest тело запроса блокировки.
type BlockUserRequest struct {
	Reason   string `json:"reason,omitempty"`
	Until    string `json:"until,omitempty"`
	Password string `json:"password"`
}

// SubscriptionDaysRequest тело запроса начисления или списания дней подписки.
type SubscriptionDaysRequest struct {
	Days     int    `json:"days"`
	Password string `json:"password"`
}

// SubscriptionChange ответ на начисление или списание дней.
type SubscriptionChange struct {
	Success      bool       `json:"success"`
	PremiumUntil *time.Time `json:"premiumUntil"`
}
