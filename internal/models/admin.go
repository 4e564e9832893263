// Package models содержит структуры данных, которыми консоль администратора
// обменивается с бэкендом. Консоль не изменяет их, только передаёт дальше.
package models

// Admin представляет администратора, вошедшего в консоль.
type Admin struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  string  `json:"role"`
}

// DisplayName возвращает имя администратора или email, если имя не задано.
func (a Admin) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	return a.Email
}

// LoginRequest тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse ответ бэкенда на успешный вход.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Admin       Admin  `json:"admin"`
}

// PasswordCheck ответ проверки пароля администратора.
type PasswordCheck struct {
	Valid bool `json:"valid"`
}

// SuccessResponse общий ответ мутаций.
type SuccessResponse struct {
	Success bool `json:"success"`
}
