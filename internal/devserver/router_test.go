package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/client/api"
	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/devserver/auth"
	"github.com/dmitrijs2005/giftshop/internal/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type harness struct {
	srv    *httptest.Server
	client *api.Client
	deps   *RouterDeps
}

func newHarness(t *testing.T, loginsPerMinute int) *harness {
	t.Helper()

	accounts, err := NewAccounts()
	require.NoError(t, err)

	limiter := NewRateLimiter(loginsPerMinute, time.Hour)
	t.Cleanup(limiter.Stop)

	deps := &RouterDeps{
		Catalog:       NewCatalog(),
		Accounts:      accounts,
		Orders:        NewOrderBook(),
		Metrics:       NewMetrics(prometheus.NewRegistry()),
		LoginLimiter:  limiter,
		Logger:        logging.Nop(),
		SecretKey:     testSecret,
		TokenValidity: time.Hour,
	}

	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL, api.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return &harness{srv: srv, client: c, deps: deps}
}

func (h *harness) login(t *testing.T) models.UserInfo {
	t.Helper()
	u, err := h.client.Login(context.Background(), models.LoginRequest{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, err)
	return u
}

func validOrder() models.OrderRequest {
	return models.OrderRequest{
		ProductID:     1,
		Message:       "축하해요",
		MessageCardID: "901",
		OrdererName:   "보내는이",
		Receivers: []models.OrderReceiver{
			{Name: "가", PhoneNumber: "01011112222", Quantity: 1},
			{Name: "나", PhoneNumber: "01033334444", Quantity: 2},
		},
	}
}

func TestThemes(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()

	themes, err := h.client.FetchThemes(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 5)
	assert.Equal(t, "생일", themes[0].Name)

	d, err := h.client.FetchThemeDetail(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "스몰럭셔리", d.Name)
	assert.Equal(t, "#222222", d.BackgroundColor)

	_, err = h.client.FetchThemeDetail(ctx, 77)
	require.ErrorIs(t, err, api.ErrThemeNotFound)
}

func TestThemeProducts_CursorWalk(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()

	var (
		cursor int
		ids    []int64
	)
	for {
		page, err := h.client.FetchThemeProducts(ctx, 2, cursor, 5)
		require.NoError(t, err)
		for _, p := range page.List {
			ids = append(ids, p.ID)
		}
		if !page.HasMoreList {
			break
		}
		cursor = page.Cursor
	}
	assert.Len(t, ids, 12)
	assert.Equal(t, int64(2001), ids[0])

	_, err := h.client.FetchThemeProducts(ctx, 99, 0, 5)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestThemeProducts_BadQuery(t *testing.T) {
	h := newHarness(t, 10)

	for _, q := range []string{"cursor=-1", "cursor=x", "limit=0", "limit=abc"} {
		resp, err := http.Get(h.srv.URL + "/api/themes/1/products?" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestRanking(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()

	list, err := h.client.FetchRankingProducts(ctx, models.GenderTeen, models.RankingGiven)
	require.NoError(t, err)
	assert.Len(t, list, 4)
	for _, p := range list {
		assert.Equal(t, models.RankingGiven, p.RankingType)
		require.NotNil(t, p.Price)
	}

	resp, err := http.Get(h.srv.URL + "/api/products/ranking?targetType=KIDS&rankType=MANY_WISH")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductSummary(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()

	s, err := h.client.FetchProductSummary(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), s.ID)
	assert.NotZero(t, s.Price)

	_, err = h.client.FetchProductSummary(ctx, 123456)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, msgProductNotFound, apiErr.Message)
	assert.True(t, apiErr.IsClientError())
}

func TestLogin(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()

	u := h.login(t)
	assert.Equal(t, DemoEmail, u.Email)
	assert.Equal(t, DemoName, u.Name)
	assert.True(t, u.Valid())

	claims, err := auth.ParseToken(u.AuthToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, DemoEmail, claims.Email)

	_, err = h.client.Login(ctx, models.LoginRequest{Email: DemoEmail, Password: "wrong-password"})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, msgBadCredentials, apiErr.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.deps.Metrics.loginFailures))

	_, err = h.client.Login(ctx, models.LoginRequest{Email: "not-an-email", Password: "password1"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "올바른 이메일 형식을 입력해주세요.", apiErr.Message)
}

func TestLogin_MalformedBody(t *testing.T) {
	h := newHarness(t, 10)

	resp, err := http.Post(h.srv.URL+"/api/login", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, msgBadRequest, body.Message)
}

func TestLogin_RateLimited(t *testing.T) {
	h := newHarness(t, 2)
	ctx := context.Background()

	creds := models.LoginRequest{Email: DemoEmail, Password: "wrong-password"}
	for range 2 {
		_, err := h.client.Login(ctx, creds)
		require.Error(t, err)
	}

	_, err := h.client.Login(ctx, models.LoginRequest{Email: DemoEmail, Password: DemoPassword})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, msgTooManyRequests, apiErr.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.deps.Metrics.rateLimited))
}

func TestCreateOrder(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()
	u := h.login(t)

	resp, err := h.client.CreateOrder(ctx, validOrder(), u.AuthToken)
	require.NoError(t, err)

	_, err = uuid.Parse(resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, resp.Status)
	assert.Equal(t, 1, h.deps.Orders.Count())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.deps.Metrics.orders))
}

func TestCreateOrder_Unauthorized(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()

	expired, err := auth.GenerateToken(DemoEmail, DemoName, testSecret, -time.Minute)
	require.NoError(t, err)
	forged, err := auth.GenerateToken(DemoEmail, DemoName, []byte("other"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{name: "garbage", token: "abc", message: msgLoginRequired},
		{name: "expired", token: expired, message: msgTokenExpired},
		{name: "foreign signature", token: forged, message: msgLoginRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.client.CreateOrder(ctx, validOrder(), tt.token)
			require.ErrorIs(t, err, api.ErrUnauthorized)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}

	t.Run("no header", func(t *testing.T) {
		b, _ := json.Marshal(validOrder())
		resp, err := http.Post(h.srv.URL+"/api/order", "application/json", bytes.NewReader(b))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	assert.Zero(t, h.deps.Orders.Count())
}

func TestCreateOrder_Rejected(t *testing.T) {
	h := newHarness(t, 10)
	ctx := context.Background()
	u := h.login(t)

	dup := validOrder()
	dup.Receivers[1].PhoneNumber = dup.Receivers[0].PhoneNumber

	unknown := validOrder()
	unknown.ProductID = 424242

	tests := []struct {
		name    string
		req     models.OrderRequest
		status  int
		message string
	}{
		{name: "duplicate phones", req: dup, status: http.StatusBadRequest, message: "전화번호가 중복되었습니다."},
		{name: "unknown product", req: unknown, status: http.StatusNotFound, message: msgProductNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.client.CreateOrder(ctx, tt.req, u.AuthToken)
			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
	assert.Zero(t, h.deps.Orders.Count())
}

func TestCreateOrder_ValidationErrorsListed(t *testing.T) {
	h := newHarness(t, 10)
	u := h.login(t)

	bad := validOrder()
	bad.Message = ""
	bad.Receivers[0].PhoneNumber = "123"
	b, err := json.Marshal(bad)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/api/order", bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+u.AuthToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "메시지를 입력하세요.", body.Message)
	assert.Contains(t, body.Errors, "receivers[0].phoneNumber")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newHarness(t, 10)

	resp, err := http.Get(h.srv.URL + "/api/nope")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(b), msgRouteNotFound)

	resp, err = http.Get(h.srv.URL + "/api/order")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t, 10)

	_, err := h.client.FetchThemeDetail(context.Background(), 1)
	require.NoError(t, err)

	resp, err := http.Get(h.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(b)
	assert.Contains(t, out, "giftshop_http_requests_total")
	assert.Contains(t, out, `route="/api/themes/{themeId}/info"`)
}
