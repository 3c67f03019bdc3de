package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"wishly/internal/domain/entity"
)

//go:embed templates/*.html
var templatesFS embed.FS

//nolint:gochecknoglobals
var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Message готовое к отправке письмо.
type Message struct {
	To      string
	Subject string
	HTML    string
}

func RenderGiftClaimed(e entity.GiftClaimedEmail) (Message, error) {
	html, err := render("gift_claimed.html", e)
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      e.HostEmail,
		Subject: fmt.Sprintf("Someone claimed %s from your Wishly!", e.GiftName),
		HTML:    html,
	}, nil
}

func RenderClaimConfirmation(e entity.ClaimConfirmationEmail) (Message, error) {
	html, err := render("claim_confirmation.html", e)
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      e.GuestEmail,
		Subject: fmt.Sprintf("You claimed %s for %s", e.GiftName, e.EventTitle),
		HTML:    html,
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}

	return buf.String(), nil
}
