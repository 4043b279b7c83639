package response

import (
	"time"

	"shareit/internal/usecase/queries"
)

type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64       `json:"id"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Status string      `json:"status"`
	Item   RefResponse `json:"item"`
	Booker RefResponse `json:"booker"`
}

// FromBookingView renders timestamps in loc.
func FromBookingView(v *queries.BookingView, loc *time.Location) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  v.Start.In(loc),
		End:    v.End.In(loc),
		Status: v.Status.String(),
		Item:   RefResponse{ID: v.Item.ID, Name: v.Item.Name},
		Booker: RefResponse{ID: v.Booker.ID, Name: v.Booker.Name},
	}
}

func FromBookingViews(views []*queries.BookingView, loc *time.Location) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v, loc)
	}
	return res
}
