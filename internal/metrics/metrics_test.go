package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/teas/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/teas/{id}", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teas/42", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/teas/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestAuthEvent(t *testing.T) {
	okBefore := testutil.ToFloat64(authEvents.WithLabelValues("login", OutcomeSuccess))
	failBefore := testutil.ToFloat64(authEvents.WithLabelValues("login", OutcomeFailure))

	AuthEvent("login", nil)
	AuthEvent("login", errors.New("nope"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(authEvents.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(authEvents.WithLabelValues("login", OutcomeFailure)))
}
