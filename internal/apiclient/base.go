package apiclient

import (
	"fmt"
	"net/url"
	"strings"
)

// APIPrefix префикс API бэкенда.
const APIPrefix = "/api"

// ResolveBaseURL вычисляет базовый адрес API по значению из окружения.
// Пустое значение даёт относительный APIPrefix того же origin. Иначе хвостовые
// слэши срезаются и APIPrefix добавляется, если его ещё нет.
func ResolveBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return APIPrefix
	}
	if strings.HasSuffix(base, APIPrefix) {
		return base
	}
	return base + APIPrefix
}

// absoluteBase дополняет относительный базовый адрес origin'ом консоли.
func absoluteBase(base, origin string) (string, error) {
	const op = "apiclient.absoluteBase"
	if !strings.HasPrefix(base, "/") {
		if _, err := url.ParseRequestURI(base); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return base, nil
	}
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return "", fmt.Errorf("%s: relative api base %q requires an origin", op, base)
	}
	u, err := url.ParseRequestURI(origin)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%s: invalid origin %q", op, origin)
	}
	return origin + base, nil
}
