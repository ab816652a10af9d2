package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/validation"
	"github.com/dmitrijs2005/giftshop/internal/devserver/auth"
	"github.com/dmitrijs2005/giftshop/internal/logging"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	maxBodyBytes     = 1 << 20
)

const (
	msgBadRequest      = "잘못된 요청입니다."
	msgBadCredentials  = "이메일 또는 비밀번호가 올바르지 않습니다."
	msgProductNotFound = "상품을 찾을 수 없습니다."
	msgThemeNotFound   = "Theme not found"
	msgRouteNotFound   = "요청한 API를 찾을 수 없습니다."
	msgMethodNotAllow  = "허용되지 않은 메서드입니다."
	msgInternal        = "서버 오류가 발생했습니다."
)

type handler struct {
	catalog       *Catalog
	accounts      *Accounts
	orders        *OrderBook
	metrics       *Metrics
	validate      *validation.Validator
	logger        logging.Logger
	secret        []byte
	tokenValidity time.Duration
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeInvalid(w, err)
		return
	}

	acc, err := h.accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		h.metrics.RecordLoginFailure()
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	token, err := auth.GenerateToken(acc.Email, acc.Name, h.secret, h.tokenValidity)
	if err != nil {
		h.logger.Error(r.Context(), "failed to sign token", "email", acc.Email, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeData(w, models.UserInfo{AuthToken: token, Email: acc.Email, Name: acc.Name})
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgLoginRequired)
		return
	}

	var req models.OrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeInvalid(w, err)
		return
	}
	if _, err := h.catalog.Summary(req.ProductID); err != nil {
		writeError(w, http.StatusNotFound, msgProductNotFound)
		return
	}

	resp := h.orders.Place(claims.Email, req)
	h.metrics.RecordOrder()
	h.logger.Info(r.Context(), "order placed",
		"order_id", resp.OrderID,
		"email", claims.Email,
		"product_id", req.ProductID,
		"quantity", req.TotalQuantity(),
	)

	writeData(w, resp)
}

func (h *handler) productSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	s, err := h.catalog.Summary(id)
	if err != nil {
		writeError(w, http.StatusNotFound, msgProductNotFound)
		return
	}
	writeData(w, s)
}

func (h *handler) ranking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := q.Get("targetType")
	if target == "" {
		target = models.GenderAll.TargetType()
	}
	rank := q.Get("rankType")
	if rank == "" {
		rank = models.RankingWanted.RankType()
	}

	list, err := h.catalog.Ranking(target, rank)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, list)
}

func (h *handler) themes(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.catalog.Themes())
}

func (h *handler) themeInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "themeId")
	if !ok {
		return
	}

	d, err := h.catalog.ThemeDetail(id)
	if err != nil {
		writeError(w, http.StatusNotFound, msgThemeNotFound)
		return
	}
	writeData(w, d)
}

func (h *handler) themeProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "themeId")
	if !ok {
		return
	}

	cursor, err := queryInt(r, "cursor", 0)
	if err != nil || cursor < 0 {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil || limit < 1 {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	limit = min(limit, maxPageLimit)

	page, err := h.catalog.ThemeProducts(id, cursor, limit)
	if err != nil {
		writeError(w, http.StatusNotFound, msgThemeNotFound)
		return
	}
	writeData(w, page)
}

// decode reads a JSON body into v, answering 400 itself on failure.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Debug(r.Context(), "bad request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}

// writeInvalid answers 400 with the first field message and the full map.
func (h *handler) writeInvalid(w http.ResponseWriter, err error) {
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	body := errorBody{Message: msgBadRequest, Errors: fe}
	if keys := fe.Fields(); len(keys) > 0 {
		body.Message = fe[keys[0]]
	}
	writeJSON(w, http.StatusBadRequest, body)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
