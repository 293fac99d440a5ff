package domain

import "time"

// Item is an entry of the inventory register.
type Item struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    uint      `json:"quantity"`
	Location    string    `json:"location"`
	DateAdded   time.Time `json:"date_added"`
}

// Profile holds per-user display preferences.
type Profile struct {
	UserID               uint   `json:"user_id"`
	Bio                  string `json:"bio"`
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultProfile is returned for users who never saved preferences.
func DefaultProfile(userID uint) Profile {
	return Profile{UserID: userID, Theme: ThemeLight, NotificationsEnabled: true}
}
