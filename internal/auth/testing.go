package auth

import "context"

// SetOperatorForTest injects an operator ID into the context for
// testing purposes.
func SetOperatorForTest(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorIDKey, operatorID)
}
