package audit

import "context"

// RequestInfo describes the HTTP request behind a mutation.
type RequestInfo struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

type requestKey struct{}

func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestKey{}, info)
}

// RequestInfoFromContext returns the zero RequestInfo outside a request.
func RequestInfoFromContext(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestKey{}).(RequestInfo)
	return info
}
