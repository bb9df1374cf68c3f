package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func callWithRole(t *testing.T, mw func(http.Handler) http.Handler, role string) int {
	t.Helper()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest("GET", "/", nil)
	if role != "" {
		req = req.WithContext(WithRole(req.Context(), role))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequire(t *testing.T) {
	cases := []struct {
		name string
		role string
		perm string
		want int
	}{
		{"granted", "professor", "question:generate", http.StatusNoContent},
		{"wildcard role", "admin", "user:delete", http.StatusNoContent},
		{"denied", "professor", "user:delete", http.StatusForbidden},
		{"no role in context", "", "question:generate", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := callWithRole(t, Require(tc.perm), tc.role); got != tc.want {
				t.Fatalf("status %d; want %d", got, tc.want)
			}
		})
	}
}

func TestRequireAny(t *testing.T) {
	cases := []struct {
		name  string
		role  string
		perms []string
		want  int
	}{
		{"one of two matches", "professor", []string{"user:delete", "material:upload"}, http.StatusNoContent},
		{"none match", "professor", []string{"user:delete", "user:impersonate"}, http.StatusForbidden},
		{"no role in context", "", []string{"material:view"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := callWithRole(t, RequireAny(tc.perms...), tc.role); got != tc.want {
				t.Fatalf("status %d; want %d", got, tc.want)
			}
		})
	}
}
