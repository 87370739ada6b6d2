package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// supported lists the locales the API can answer in; the first entry is the
// fallback the matcher resolves to.
var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
}

var matcher = language.NewMatcher(supported)

// countryLocales maps ISO country codes to a default locale when the request
// carries no language hint at all.
var countryLocales = map[string]string{
	"ES": "es",
	"MX": "es",
	"AR": "es",
	"CO": "es",
	"FR": "fr",
}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// I18N stores the request locale and best-effort country in the context.
// Locale comes from X-Locale, then Accept-Language, then the country default.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, defaultLocale, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, strings.ToUpper(country))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string, country string) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		return matchLocale(v)
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		if tags, _, err := language.ParseAcceptLanguage(v); err == nil && len(tags) > 0 {
			_, idx, _ := matcher.Match(tags...)
			return baseLocale(supported[idx])
		}
	}
	if locale, ok := countryLocales[strings.ToUpper(country)]; ok {
		return locale
	}
	if fallback != "" {
		return fallback
	}
	return "en"
}

func matchLocale(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "en"
	}
	_, idx, _ := matcher.Match(tag)
	return baseLocale(supported[idx])
}

func baseLocale(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "en"
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code for the given request.
// Proxy headers win over the GeoIP lookup so the resolver stays optional.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Country-Code", "CF-IPCountry", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return strings.ToUpper(val)
		}
	}
	if region := localeRegion(r.Header.Get("X-Locale")); region != "" {
		return region
	}
	if region := localeRegion(r.Header.Get("Accept-Language")); region != "" {
		return region
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}

func localeRegion(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		token := strings.TrimSpace(strings.Split(part, ";")[0])
		if token == "" {
			continue
		}
		if idx := strings.IndexAny(token, "-_"); idx > 0 && idx < len(token)-1 {
			region := token[idx+1:]
			if len(region) == 2 {
				return strings.ToUpper(region)
			}
		}
	}
	return ""
}
