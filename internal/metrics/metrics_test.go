package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe("creditCard", "create", 201, 10*time.Millisecond)
	m.Observe("creditCard", "create", 201, 5*time.Millisecond)
	m.Observe("creditCard", "find", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("creditCard", "create", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("creditCard", "find", "404")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe("bankAccount", "query", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "bank_admin_entity_requests_total"))
}
