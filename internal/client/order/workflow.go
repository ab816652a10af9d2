package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/client/api"
	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/notify"
	"github.com/dmitrijs2005/giftshop/internal/client/router"
	"github.com/dmitrijs2005/giftshop/internal/logging"
)

var (
	ErrInFlight  = errors.New("order already being submitted")
	ErrNoProduct = errors.New("product summary not loaded")
)

type Orderer interface {
	CreateOrder(ctx context.Context, order models.OrderRequest, token string) (models.OrderResponse, error)
}

type Session interface {
	User() *models.UserInfo
}

type History interface {
	Save(ctx context.Context, rec models.OrderRecord) error
}

// Outcome of Submit. Redirect is set when the user has to go elsewhere,
// Response only after the server accepted the order.
type Outcome struct {
	Response *models.OrderResponse
	Redirect *router.Redirect
}

type Workflow struct {
	api      Orderer
	session  Session
	history  History
	notifier notify.Notifier
	logger   logging.Logger
	now      func() time.Time

	submitting atomic.Bool
}

func NewWorkflow(api Orderer, session Session, history History, n notify.Notifier, logger logging.Logger) *Workflow {
	return &Workflow{api: api, session: session, history: history, notifier: n, logger: logger, now: time.Now}
}

// Submitting reports whether an order request is in flight.
func (w *Workflow) Submitting() bool { return w.submitting.Load() }

// Submit validates the form and places the order for product.
//
// Field errors come back as validation.FieldErrors and nothing is sent.
// Without a session the outcome redirects to /login, remembering the order
// page. A second Submit while one is in flight fails with ErrInFlight.
func (w *Workflow) Submit(ctx context.Context, product *models.ProductSummary, form *Form) (Outcome, error) {
	if product == nil {
		return Outcome{}, ErrNoProduct
	}

	if err := form.Validate(); err != nil {
		return Outcome{}, err
	}

	user := w.session.User()
	if user == nil || user.AuthToken == "" {
		return Outcome{Redirect: router.ToLogin(fmt.Sprintf("/order/%d", product.ID))}, nil
	}

	if !w.submitting.CompareAndSwap(false, true) {
		return Outcome{}, ErrInFlight
	}
	defer w.submitting.Store(false)

	values := form.Values()
	req := values.Request(product.ID)

	resp, err := w.api.CreateOrder(ctx, req, user.AuthToken)
	if err != nil {
		return w.failed(ctx, product.ID, err), err
	}

	w.notifier.Notify(notify.Notice{Kind: notify.Success, Message: api.MsgOrderSucceeded})

	w.record(ctx, user, product, req, resp)
	return Outcome{Response: &resp}, nil
}

func (w *Workflow) failed(ctx context.Context, productID int64, err error) Outcome {
	status := api.StatusOf(err)
	w.logger.Warn(ctx, "order failed", "product_id", productID, "status", status, "error", err)

	if status == http.StatusUnauthorized {
		w.notifier.Notify(notify.Notice{Kind: notify.Error, Message: api.MsgUnauthorized})
		rd := router.ToLogin(fmt.Sprintf("/order/%d", productID))
		rd.Replace = true
		return Outcome{Redirect: rd}
	}
	w.notifier.Notify(notify.Notice{Kind: notify.Error, Message: api.UserMessage(err)})
	return Outcome{}
}

// record keeps the accepted order for the my page. Failures only log: the
// order itself already went through.
func (w *Workflow) record(ctx context.Context, user *models.UserInfo, product *models.ProductSummary, req models.OrderRequest, resp models.OrderResponse) {
	if w.history == nil {
		return
	}

	rec := models.OrderRecord{
		OrderID:       resp.OrderID,
		OrdererEmail:  user.Email,
		OrdererName:   req.OrdererName,
		ProductID:     product.ID,
		ProductName:   product.Name,
		MessageCardID: req.MessageCardID,
		Message:       req.Message,
		Status:        resp.Status,
		CreatedAt:     w.now(),
		Receivers:     req.Receivers,
	}
	if rec.OrderID == "" {
		rec.OrderID = fmt.Sprintf("local-%d", rec.CreatedAt.UnixNano())
	}

	if err := w.history.Save(ctx, rec); err != nil {
		w.logger.Error(ctx, "failed to record order", "order_id", rec.OrderID, "error", err)
	}
}
