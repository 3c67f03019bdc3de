package entity

// Read-модели страниц. Хранятся в кэше представлений как JSON.

type GiftClaimView struct {
	User    PublicUser `json:"user"`
	Message string     `json:"message,omitempty"`
}

type GiftView struct {
	Gift
	Claim *GiftClaimView `json:"claim,omitempty"`
}

// EventView публичная страница /e/<slug> и страница события хоста /events/<id>.
type EventView struct {
	Event        Event      `json:"event"`
	Host         PublicUser `json:"host"`
	Gifts        []GiftView `json:"gifts"`
	GiftCount    int        `json:"giftCount"`
	ClaimedCount int        `json:"claimedCount"`
}

type DashboardEvent struct {
	Event
	GiftCount    int `json:"giftCount"`
	ClaimedCount int `json:"claimedCount"`
}

type DashboardView struct {
	Events []DashboardEvent `json:"events"`
}
