package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
)

// Login exchanges credentials for a session record.
func (c *Client) Login(ctx context.Context, creds models.LoginRequest) (models.UserInfo, error) {
	const op = "login"
	raw, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodPost,
		path:     "/api/login",
		body:     creds,
		fallback: MsgLoginFailed,
	})
	if err != nil {
		return models.UserInfo{}, err
	}

	u, err := decodeObject[models.UserInfo](raw)
	if err != nil {
		return models.UserInfo{}, decodeErr(op, http.StatusOK, MsgLoginFailed, err)
	}
	return u, nil
}

// CreateOrder places an order on behalf of the bearer of token. The caller
// must make sure token is not empty.
func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest, token string) (models.OrderResponse, error) {
	const op = "create order"
	raw, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodPost,
		path:     "/api/order",
		body:     order,
		token:    token,
		fallback: MsgOrderFailed,
	})
	if err != nil {
		return models.OrderResponse{}, err
	}

	resp, err := decodeObject[models.OrderResponse](raw)
	if err != nil {
		return models.OrderResponse{}, decodeErr(op, http.StatusOK, MsgOrderFailed, err)
	}
	return resp, nil
}

func (c *Client) FetchProductSummary(ctx context.Context, productID int64) (models.ProductSummary, error) {
	const op = "fetch product summary"
	raw, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodGet,
		path:     "/api/products/" + strconv.FormatInt(productID, 10) + "/summary",
		fallback: MsgProductFailed,
	})
	if err != nil {
		return models.ProductSummary{}, err
	}

	p, err := decodeObject[models.ProductSummary](raw)
	if err != nil {
		return models.ProductSummary{}, decodeErr(op, http.StatusOK, MsgProductFailed, err)
	}
	return p, nil
}

func (c *Client) FetchRankingProducts(ctx context.Context, gender models.GenderFilter, rt models.RankingType) ([]models.Product, error) {
	const op = "fetch ranking"
	q := url.Values{}
	q.Set("targetType", gender.TargetType())
	q.Set("rankType", rt.RankType())

	raw, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodGet,
		path:     "/api/products/ranking",
		query:    q,
		fallback: MsgAPIError,
	})
	if err != nil {
		return nil, err
	}

	list, err := decodeList[models.Product](raw, "data")
	if err != nil {
		return nil, decodeErr(op, http.StatusOK, MsgAPIError, err)
	}
	return list, nil
}

func (c *Client) FetchThemes(ctx context.Context) ([]models.Theme, error) {
	const op = "fetch themes"
	raw, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodGet,
		path:     "/api/themes",
		fallback: MsgAPIError,
	})
	if err != nil {
		return nil, err
	}

	list, err := decodeList[models.Theme](raw, "data", "themes")
	if err != nil {
		return nil, decodeErr(op, http.StatusOK, MsgAPIError, err)
	}
	return list, nil
}

// FetchThemeDetail reports a missing theme as an *Error matching ErrThemeNotFound.
func (c *Client) FetchThemeDetail(ctx context.Context, themeID int64) (models.ThemeDetail, error) {
	const op = "fetch theme detail"
	raw, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodGet,
		path:        "/api/themes/" + strconv.FormatInt(themeID, 10) + "/info",
		fallback:    MsgAPIError,
		notFound:    ErrThemeNotFound,
		notFoundMsg: MsgThemeNotFound,
	})
	if err != nil {
		return models.ThemeDetail{}, err
	}

	d, err := decodeObject[models.ThemeDetail](raw)
	if err != nil {
		return models.ThemeDetail{}, decodeErr(op, http.StatusOK, MsgAPIError, err)
	}
	return d, nil
}

// FetchThemeProducts returns the page starting at cursor.
func (c *Client) FetchThemeProducts(ctx context.Context, themeID int64, cursor, limit int) (models.ThemeProductsPage, error) {
	const op = "fetch theme products"
	q := url.Values{}
	q.Set("cursor", strconv.Itoa(cursor))
	q.Set("limit", strconv.Itoa(limit))

	raw, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodGet,
		path:     "/api/themes/" + strconv.FormatInt(themeID, 10) + "/products",
		query:    q,
		fallback: MsgAPIError,
	})
	if err != nil {
		return models.ThemeProductsPage{}, err
	}

	page, err := decodeObject[models.ThemeProductsPage](raw)
	if err != nil {
		return models.ThemeProductsPage{}, decodeErr(op, http.StatusOK, MsgAPIError, err)
	}
	if page.List == nil {
		page.List = []models.ThemeProduct{}
	}
	return page, nil
}
