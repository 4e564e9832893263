// Package list отдаёт постраничный список пользователей с поиском.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// Item пользователь в списке с вычисленным признаком блокировки.
type Item struct {
	models.UserListItem
	Blocked bool `json:"blocked"`
}

// Page страница списка для консоли: к пагинации бэкенда добавлено число страниц.
type Page struct {
	Items      []Item `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

func newPage(p *models.UsersPage, now time.Time) Page {
	out := Page{
		Items:      make([]Item, 0, len(p.Items)),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(),
	}
	for _, u := range p.Items {
		out.Items = append(out.Items, Item{UserListItem: u, Blocked: u.IsBlocked(now)})
	}
	return out
}

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	GetUsers(ctx context.Context, f models.UsersFilter) (*models.UsersPage, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// parseFilter читает search, userId, page и limit из строки запроса.
func parseFilter(r *http.Request) (models.UsersFilter, error) {
	q := r.URL.Query()
	f := models.UsersFilter{Search: strings.TrimSpace(q.Get("search"))}

	if v := q.Get("userId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, err
		}
		f.UserID = &id
	}
	for key, dst := range map[string]*int{"page": &f.Page, "limit": &f.Limit} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		*dst = n
	}
	return f, nil
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Tags Users
// @Produce  json
// @Param search query string false "Поиск по email, имени или телефону"
// @Param userId query int false "Точный ID пользователя"
// @Param page query int false "Страница, по умолчанию 1"
// @Param limit query int false "Размер страницы, по умолчанию 20"
// @Success 200 {object} response.Response{data=Page}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	f, err := parseFilter(r)
	if err != nil {
		log.Error("invalid query", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid query parameters"))
		return
	}

	page, err := h.service.GetUsers(r.Context(), f)
	if err != nil {
		log.Error("failed to load users", sl.Err(err))
		response.Fail(w, r, err, "Ошибка загрузки пользователей")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(newPage(page, time.Now())))
}
