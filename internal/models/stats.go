package models

// ChartPoint точка графика регистраций.
type ChartPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ServerStatus состояние компонентов бэкенда.
type ServerStatus struct {
	Database string `json:"database"` // "ok" или "error"
	Server   string `json:"server"`
}

// DashboardStats агрегированная статистика для главной страницы.
type DashboardStats struct {
	UsersOnline         int          `json:"usersOnline"`
	SubscriptionsActive int          `json:"subscriptionsActive"`
	UsersToday          int          `json:"usersToday"`
	NewRegistrations    int          `json:"newRegistrations"`
	ChartData           []ChartPoint `json:"chartData"`
	DeletedAccounts     int          `json:"deletedAccounts"`
	ServerStatus        ServerStatus `json:"serverStatus"`
}
