package devserver

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/google/uuid"
)

const (
	OrderStatusCompleted = "COMPLETED"
	orderAcceptedMessage = "주문이 완료되었습니다."
)

type placedOrder struct {
	email    string
	request  models.OrderRequest
	placedAt time.Time
}

// OrderBook records accepted orders in memory.
type OrderBook struct {
	mu     sync.Mutex
	orders map[string]placedOrder
	newID  func() string
	now    func() time.Time
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		orders: make(map[string]placedOrder),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Place stores req on behalf of email and returns the confirmation.
func (b *OrderBook) Place(email string, req models.OrderRequest) models.OrderResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.newID()
	b.orders[id] = placedOrder{email: email, request: req, placedAt: b.now()}

	return models.OrderResponse{OrderID: id, Status: OrderStatusCompleted, Message: orderAcceptedMessage}
}

func (b *OrderBook) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.orders)
}
