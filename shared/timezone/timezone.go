// Package timezone keeps all "now" and date arithmetic in the property's
// local timezone. Which booking is active for a room right now depends on the
// hotel's local date, not the server's, so every caller that needs the current
// time goes through Now().
//
// The timezone is configured via the APP_TIMEZONE environment variable using
// standard IANA names ("Europe/Moscow", "UTC").
package timezone

import (
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts t to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Format formats t in the application timezone using the given layout.
func Format(t time.Time, layout string) string {
	return t.In(appLocation).Format(layout)
}

// Parse parses value using the given layout, interpreted in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation) //nolint:wrapcheck
}

// GetLocation returns the application timezone location.
func GetLocation() *time.Location {
	return appLocation
}
