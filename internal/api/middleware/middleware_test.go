package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/luklinx/carsabeg-sub000/pkg/metrics"
)

func TestAuth(t *testing.T) {
	var (
		gotID    int64
		gotAdmin bool
	)
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		gotAdmin = IsAdmin(r.Context())
	}))

	tests := []struct {
		name      string
		userID    string
		role      string
		wantCode  int
		wantAdmin bool
	}{
		{name: "admin", userID: "7", role: "admin", wantCode: http.StatusOK, wantAdmin: true},
		{name: "admin case-insensitive", userID: "7", role: "Admin", wantCode: http.StatusOK, wantAdmin: true},
		{name: "regular user", userID: "7", wantCode: http.StatusOK},
		{name: "missing id", role: "admin", wantCode: http.StatusUnauthorized},
		{name: "invalid id", userID: "abc", wantCode: http.StatusUnauthorized},
		{name: "zero id", userID: "0", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotAdmin = 0, false
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				r.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				r.Header.Set(HeaderUserRole, tt.role)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, int64(7), gotID)
				assert.Equal(t, tt.wantAdmin, gotAdmin)
			}
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/slots/{slotId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slots/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/slots/{slotId}", "404")))
}
