package utils

import (
	"context"
)

type contextKey string

const (
	CustomerIDKey contextKey = "customer_id"
	EmployeeIDKey contextKey = "employee_id"
)

// Identity is supplied by the upstream auth collaborator and treated as an
// opaque string here.

func GetCustomerIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(CustomerIDKey)
	if val == nil {
		return "", false
	}

	id, ok := val.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func GetEmployeeIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(EmployeeIDKey)
	if val == nil {
		return "", false
	}

	id, ok := val.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func SetCustomerContext(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, CustomerIDKey, customerID)
}

func SetEmployeeContext(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, EmployeeIDKey, employeeID)
}
