package request

import (
	"strings"

	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
)

// Blank text is refused here, before any lookup. The comment constructor
// checks it again for callers that bypass HTTP.
type PostCommentRequest struct {
	Text string `json:"text"`
}

func (r PostCommentRequest) ToCommand(itemID int64) (commands.PostCommentRequest, error) {
	if strings.TrimSpace(r.Text) == "" {
		return commands.PostCommentRequest{}, errs.ErrEmptyComment
	}
	return commands.PostCommentRequest{ItemID: itemID, Text: r.Text}, nil
}
