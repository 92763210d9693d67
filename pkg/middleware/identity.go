package middleware

import (
	"net/http"

	"fleet-booking/pkg/utils"
)

// Identity copies the caller identity headers onto the request context.
// Authentication itself happens upstream; the IDs are trusted opaque strings.
// Handlers that require a customer or employee check for presence themselves.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if customerID := r.Header.Get("X-Customer-ID"); customerID != "" {
				ctx = utils.SetCustomerContext(ctx, customerID)
			}
			if employeeID := r.Header.Get("X-Employee-ID"); employeeID != "" {
				ctx = utils.SetEmployeeContext(ctx, employeeID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
