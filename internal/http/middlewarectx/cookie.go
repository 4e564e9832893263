package middlewarectx

import (
	"net/http"
)

// DefaultCookieName имя cookie сессии, если конфиг его не задал.
const DefaultCookieName = "admin_session"

// Cookie связывает браузер администратора с его сессией.
// В cookie лежит только случайный идентификатор, токен остаётся на сервере.
type Cookie struct {
	Name   string
	Secure bool
}

func (c Cookie) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// Issue выдаёт браузеру cookie с идентификатором сессии.
func (c Cookie) Issue(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Expire просит браузер забыть cookie.
func (c Cookie) Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read достаёт идентификатор сессии из запроса.
func (c Cookie) Read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.name())
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}
