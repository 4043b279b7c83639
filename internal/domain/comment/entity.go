package comment

import (
	"strings"
	"time"

	"shareit/internal/pkg/errs"
)

const MaxTextLength = 2000

var ErrTextTooLong = errs.Mark(errs.New("comment text exceeds maximum length"), errs.ErrDomainValidation)

type Comment struct {
	id        int64
	itemID    int64
	authorID  int64
	text      string
	createdAt time.Time
}

func NewComment(authorID, itemID int64, text string, now time.Time) (*Comment, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, errs.ErrEmptyComment
	}
	if len(t) > MaxTextLength {
		return nil, ErrTextTooLong
	}
	return &Comment{
		itemID:    itemID,
		authorID:  authorID,
		text:      t,
		createdAt: now,
	}, nil
}

func (c *Comment) WithID(id int64) *Comment {
	c.id = id
	return c
}

func (c *Comment) ID() int64            { return c.id }
func (c *Comment) ItemID() int64        { return c.itemID }
func (c *Comment) AuthorID() int64      { return c.authorID }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
