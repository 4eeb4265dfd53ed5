package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// MaxRecentlyViewed bounds UserState.RecentlyViewed.
const MaxRecentlyViewed = 10

// UserState is the durable per-user state. RecentlyViewed is most recent first.
type UserState struct {
	Favorites      []CountryRecord `json:"favorites"`
	RecentlyViewed []CountryRecord `json:"recentlyViewed"`
	Theme          Theme           `json:"theme"`
}

func DefaultUserState() UserState {
	return UserState{
		Favorites:      []CountryRecord{},
		RecentlyViewed: []CountryRecord{},
		Theme:          ThemeLight,
	}
}
