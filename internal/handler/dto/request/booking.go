package request

import (
	"time"

	"shareit/internal/usecase/commands"
)

type CreateBookingRequest struct {
	ItemID int64  `json:"itemId" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
}

func (r CreateBookingRequest) ToCommand(loc *time.Location) (commands.CreateBookingRequest, error) {
	start, err := ParseTimestamp(r.Start, loc)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	end, err := ParseTimestamp(r.End, loc)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	return commands.CreateBookingRequest{ItemID: r.ItemID, Start: start, End: end}, nil
}
