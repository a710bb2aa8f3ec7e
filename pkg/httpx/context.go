package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeyUserEmail ctxKey = "user_email"
	CtxKeyRole      ctxKey = "role"
	CtxKeySessionID ctxKey = "session_id"
)

// UserIDFromCtx returns the authenticated user's numeric id, or 0 when the
// request carries no resolved identity.
func UserIDFromCtx(ctx context.Context) int64 {
	if v, ok := ctx.Value(CtxKeyUserID).(int64); ok {
		return v
	}
	return 0
}

// RoleFromCtx returns the resolved role name for the request, or "".
func RoleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}

// SessionIDFromCtx returns the validated session token for the request, or "".
func SessionIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySessionID).(string); ok {
		return v
	}
	return ""
}

func userKeyFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserEmail).(string); ok {
		return v
	}
	return ""
}
