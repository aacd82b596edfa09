package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model"
)

func TestBooking_ContainsDate(t *testing.T) {
	booking := model.Booking{
		CheckIn:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{
			name: "check-in day is covered",
			date: time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "middle of the stay",
			date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "check-out day is not covered",
			date: time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "day before check-in",
			date: time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "clock time in another zone does not shift the calendar day",
			date: time.Date(2026, 3, 13, 23, 0, 0, 0, time.FixedZone("MSK", 3*3600)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.ContainsDate(tt.date))
		})
	}
}
