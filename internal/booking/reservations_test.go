package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coworkcli/cowork/internal/cosoft"
)

func TestNormalizeReservations_SortsAndFormats(t *testing.T) {
	resp := &cosoft.ReservationsResponse{
		Data: []cosoft.ReservationItem{
			{
				OrderResourceRentID: "bkg-2",
				ItemName:            "Salle B",
				Start:               "2026-09-16T14:00:00",
				End:                 "2026-09-16T15:30:00",
				Prices:              &cosoft.ReservationPrice{EuroTTC: 18},
			},
			{
				OrderResourceRentID: "bkg-1",
				ItemName:            "Salle A",
				Start:               "2026-09-15T09:00:00Z",
				End:                 "2026-09-15T10:00:00Z",
			},
		},
	}

	reservations := NormalizeReservations(resp)
	require.Len(t, reservations, 2)

	assert.Equal(t, "bkg-1", reservations[0].ID)
	assert.Equal(t, "2026-09-15", reservations[0].Date)
	assert.Equal(t, "09:00 - 10:00", reservations[0].Time)
	assert.Equal(t, "N/A", reservations[0].Price)

	assert.Equal(t, "bkg-2", reservations[1].ID)
	assert.Equal(t, "14:00 - 15:30", reservations[1].Time)
	assert.Equal(t, "18.00 €", reservations[1].Price)
}

func TestNormalizeReservations_KeepsUnparseableRows(t *testing.T) {
	resp := &cosoft.ReservationsResponse{
		Data: []cosoft.ReservationItem{
			{OrderResourceRentID: "bkg-odd", ItemName: "Salle X", Start: "whenever"},
		},
	}

	reservations := NormalizeReservations(resp)
	require.Len(t, reservations, 1)
	assert.Equal(t, "bkg-odd", reservations[0].ID)
	assert.True(t, reservations[0].Start.IsZero())
	assert.Empty(t, reservations[0].Date)
}

func TestFilterByDate(t *testing.T) {
	reservations := []Reservation{
		{ID: "a", Date: "2026-09-15"},
		{ID: "b", Date: "2026-09-16"},
		{ID: "c", Date: "2026-09-15"},
	}

	filtered := FilterByDate(reservations, "2026-09-15")
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)

	assert.Empty(t, FilterByDate(reservations, "2026-09-17"))
}
