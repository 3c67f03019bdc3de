package entity

import "wishly/internal/domain/value"

// GiftClaimedEmail письмо хосту о том, что подарок забронирован.
type GiftClaimedEmail struct {
	HostEmail    string `json:"hostEmail"`
	HostName     string `json:"hostName"`
	GiftName     string `json:"giftName"`
	ClaimerName  string `json:"claimerName"`
	EventTitle   string `json:"eventTitle"`
	DashboardURL string `json:"dashboardUrl"`
	Message      string `json:"message,omitempty"`
}

// ClaimConfirmationEmail подтверждение гостю.
type ClaimConfirmationEmail struct {
	GuestEmail string      `json:"guestEmail"`
	GuestName  string      `json:"guestName"`
	GiftName   string      `json:"giftName"`
	EventTitle string      `json:"eventTitle"`
	GiftLink   string      `json:"giftLink,omitempty"`
	Price      value.Paisa `json:"price,omitempty"`
}
