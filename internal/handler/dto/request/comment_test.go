//go:build unit

package request_test

import (
	"testing"

	"shareit/internal/handler/dto/request"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCommentRequestToCommand(t *testing.T) {
	t.Run("text is passed through", func(t *testing.T) {
		cmd, err := request.PostCommentRequest{Text: " Great drill "}.ToCommand(10)
		require.NoError(t, err)
		assert.Equal(t, commands.PostCommentRequest{ItemID: 10, Text: " Great drill "}, cmd)
	})

	t.Run("blank text is refused", func(t *testing.T) {
		for _, text := range []string{"", " ", "\t\n"} {
			_, err := request.PostCommentRequest{Text: text}.ToCommand(10)
			assert.ErrorIs(t, err, errs.ErrEmptyComment, "text %q", text)
		}
	})
}
