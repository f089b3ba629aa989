package models

import "time"

// Tier уровень доступа пользователя
type Tier string

const (
	TierNone  Tier = ""
	TierFree  Tier = "free"
	TierPaid  Tier = "paid"
	TierAdmin Tier = "admin"
)

// UserIdentity что знает о пользователе контроллер доступа
type UserIdentity struct {
	UserID             string     `json:"user_id"`
	Tier               Tier       `json:"tier"`
	Language           string     `json:"language"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`
}

// DaysLeft до конца подписки; false если подписка бессрочная
func (u UserIdentity) DaysLeft(now time.Time) (int, bool) {
	if u.SubscriptionExpiry == nil {
		return 0, false
	}
	return int(u.SubscriptionExpiry.Sub(now).Hours() / 24), true
}

// Plan тариф
type Plan struct {
	ID           string  `json:"id"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
}

var Plans = []Plan{
	{ID: "weekly", Price: 9.99, DurationDays: 7},
	{ID: "monthly", Price: 29.99, DurationDays: 30},
	{ID: "yearly", Price: 199.99, DurationDays: 365},
}

func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// PendingPayment заявка /paid до проверки админом
type PendingPayment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Method      string    `json:"method"`
	TxHash      string    `json:"tx_hash"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// UserMeta метаданные из Telegram для ProfileStore
type UserMeta struct {
	UserID       string
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

// ProfileStats агрегаты ProfileStore для админ-панели
type ProfileStats struct {
	TotalUsers       int
	WeeklyActive     int
	DailyActive      int
	TotalCommands    int
	TotalSignalsSent int
	TotalDeliveries  int
}

// UserProfile строка для /profiles
type UserProfile struct {
	UserMeta
	TotalCommands   int
	SignalsReceived int
	WeekActivity    int
	FirstSeen       time.Time
	LastActivity    time.Time
}
