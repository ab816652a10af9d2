package models

import "time"

// OrderReceiver is one recipient line of an order request.
type OrderReceiver struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,kr_mobile"`
	Quantity    int    `json:"quantity" validate:"gte=1"`
}

// OrderRequest is the body of POST /api/order.
// MessageCardID is the selected card id rendered as a decimal string.
type OrderRequest struct {
	ProductID     int64           `json:"productId" validate:"required"`
	Message       string          `json:"message" validate:"required"`
	MessageCardID string          `json:"messageCardId" validate:"required"`
	OrdererName   string          `json:"ordererName" validate:"required"`
	Receivers     []OrderReceiver `json:"receivers" validate:"min=1,max=10,unique=PhoneNumber,dive"`
}

// OrderResponse is returned by a successful order.
type OrderResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TotalQuantity sums the quantities over all receivers.
func (r OrderRequest) TotalQuantity() int {
	n := 0
	for _, rc := range r.Receivers {
		n += rc.Quantity
	}
	return n
}

// OrderRecord is a confirmed order kept in the local history shown on /my.
type OrderRecord struct {
	OrderID       string
	OrdererEmail  string
	OrdererName   string
	ProductID     int64
	ProductName   string
	MessageCardID string
	Message       string
	Status        string
	CreatedAt     time.Time
	Receivers     []OrderReceiver
}
