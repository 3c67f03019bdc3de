package view

import (
	"strconv"

	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
)

// Ключи кэша совпадают с путями страниц, которые они описывают.

func PublicEventKey(slug value.Slug) string {
	return "/e/" + slug.String()
}

func EventDetailKey(id value.EventID) string {
	return "/events/" + id.String()
}

func DashboardKey(hostID value.UserID) string {
	return "/dashboard/" + hostID.String()
}

// EventKeys все представления, которые устаревают при изменении события или его подарков.
func EventKeys(event entity.Event) []string {
	return []string{
		PublicEventKey(event.Slug),
		EventDetailKey(event.ID),
		DashboardKey(event.HostID),
	}
}

// VersionedKey ключ записи конкретного поколения.
func VersionedKey(key string, version int64) string {
	return key + "@" + strconv.FormatInt(version, 10)
}
