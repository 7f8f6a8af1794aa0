package middleware

import "context"

type ctxKey string

const (
	ctxKeyClient ctxKey = "client"
	ctxKeyLocale ctxKey = "locale"
)

// WithLocale stores the active locale on ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, lang)
}

// LocaleFrom returns the locale stored on ctx.
func LocaleFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyLocale).(string)
	return v, ok && v != ""
}

// WithClient stores client state on ctx.
func WithClient(ctx context.Context, c *ClientState) context.Context {
	return context.WithValue(ctx, ctxKeyClient, c)
}

// ClientFrom returns the client state, or an empty value when absent.
func ClientFrom(ctx context.Context) *ClientState {
	if c, ok := ctx.Value(ctxKeyClient).(*ClientState); ok && c != nil {
		return c
	}
	return &ClientState{}
}
