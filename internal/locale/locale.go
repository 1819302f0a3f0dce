package locale

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"

	Default Locale = English

	// CookieName matches the key the dashboard has always persisted the language under.
	CookieName = "appLanguage"
)

type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

func Parse(raw string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case English:
		return English, true
	case Arabic:
		return Arabic, true
	}
	return Default, false
}

func (l Locale) Direction() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

// supported and matcher share index order.
var (
	supported = []Locale{English, Arabic}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Arabic})
)

type ctxKey struct{}

func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromCtx(ctx context.Context) Locale {
	if l, ok := ctx.Value(ctxKey{}).(Locale); ok {
		return l
	}
	return Default
}

// Resolve picks the locale from the cookie, then Accept-Language, then the default.
func Resolve(r *http.Request) Locale {
	if c, err := r.Cookie(CookieName); err == nil {
		if l, ok := Parse(c.Value); ok {
			return l
		}
	}

	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

func Cookie(l Locale, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
