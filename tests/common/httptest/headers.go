//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const requestIDHeader = "X-Request-Id"

// AssertAPIHeaders checks the headers every routed response carries: a JSON
// content type and a server issued request id.
func AssertAPIHeaders(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err, "response has no request id")
}
