package timezone_test

import (
	"testing"
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("expected converted time to have a location")
	}

	if !appTime.Equal(utcTime) {
		t.Error("expected conversion to preserve the instant")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}
}

func TestTimezoneParse(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2026-09-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed.Location() != timezone.GetLocation() {
		t.Error("expected parsed time to be in the application timezone")
	}

	if parsed.Year() != 2026 || parsed.Month() != time.September || parsed.Day() != 1 {
		t.Errorf("unexpected parsed date: %v", parsed)
	}

	if _, err := timezone.Parse("2006-01-02", "01.09.2026"); err == nil {
		t.Error("expected an error for a value that does not match the layout")
	}
}
