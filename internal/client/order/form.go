package order

import (
	"errors"
	"slices"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/validation"
)

// MaxReceivers caps the recipient list of one order.
const MaxReceivers = 10

var (
	ErrModalFull    = errors.New("receiver list is full")
	ErrNoSuchRow    = errors.New("receiver index out of range")
	ErrModalInvalid = errors.New("receiver list is incomplete")
	ErrModalEmpty   = errors.New("receiver list is empty")
)

// Receiver is one row of the recipient list as edited in the form.
type Receiver struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,kr_mobile"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// Values is everything the order form submits.
type Values struct {
	SelectedCardID int        `json:"selectedCardId"`
	Message        string     `json:"message" validate:"required"`
	Sender         string     `json:"sender" validate:"required"`
	Receivers      []Receiver `json:"receivers" validate:"min=1,max=10,unique=Phone,dive"`
}

type receiverList struct {
	Receivers []Receiver `json:"receivers" validate:"min=1,max=10,unique=Phone,dive"`
}

// Form holds the order form state of one product page.
type Form struct {
	mu        sync.Mutex
	v         *validation.Validator
	values    Values
	modalOpen bool
}

// NewForm preselects the first card and fills the sender with name.
func NewForm(v *validation.Validator, sender string) *Form {
	f := &Form{v: v, values: Values{Sender: sender, Receivers: []Receiver{}}}
	if len(Templates) > 0 {
		f.values.SelectedCardID = Templates[0].ID
		f.values.Message = Templates[0].DefaultMessage
	}
	return f
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.values
	out.Receivers = slices.Clone(f.values.Receivers)
	return out
}

// SelectedCard returns the template currently selected.
func (f *Form) SelectedCard() (CardTemplate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FindTemplate(f.values.SelectedCardID)
}

// SelectCard switches the card and replaces the message with the card's
// default text, or clears it for an unknown id.
func (f *Form) SelectCard(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.SelectedCardID = id
	t, _ := FindTemplate(id)
	f.values.Message = t.DefaultMessage
}

func (f *Form) SetMessage(m string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Message = m
}

func (f *Form) SetSender(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Sender = s
}

func (f *Form) Receivers() []Receiver {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.values.Receivers)
}

// Validate checks the whole form.
func (f *Form) Validate() error {
	return f.v.Struct(f.Values())
}

// OpenModal starts editing a copy of the receiver list. The form keeps its
// list until the modal completes.
func (f *Form) OpenModal() *Modal {
	f.mu.Lock()
	f.modalOpen = true
	rows := slices.Clone(f.values.Receivers)
	f.mu.Unlock()
	return &Modal{form: f, rows: rows}
}

func (f *Form) ModalOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modalOpen
}

func (f *Form) commit(rows []Receiver) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Receivers = rows
	f.modalOpen = false
}

func (f *Form) dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modalOpen = false
}

// Modal edits the receiver list in isolation from the form.
type Modal struct {
	form *Form
	rows []Receiver
}

func (m *Modal) Rows() []Receiver { return slices.Clone(m.rows) }

// Add appends an empty row with quantity 1.
func (m *Modal) Add() error {
	if len(m.rows) >= MaxReceivers {
		return ErrModalFull
	}
	m.rows = append(m.rows, Receiver{Quantity: 1})
	return nil
}

func (m *Modal) Remove(i int) error {
	if i < 0 || i >= len(m.rows) {
		return ErrNoSuchRow
	}
	m.rows = slices.Delete(m.rows, i, i+1)
	return nil
}

func (m *Modal) Update(i int, r Receiver) error {
	if i < 0 || i >= len(m.rows) {
		return ErrNoSuchRow
	}
	m.rows[i] = r
	return nil
}

// Validate reports the field errors of the edited list.
func (m *Modal) Validate() error {
	return m.form.v.Struct(receiverList{Receivers: m.rows})
}

// Complete copies the list back into the form and closes the modal. An
// empty list, or one with any invalid row, is rejected and the modal stays
// open.
func (m *Modal) Complete() error {
	if len(m.rows) == 0 {
		return ErrModalEmpty
	}
	if err := m.Validate(); err != nil {
		return errors.Join(ErrModalInvalid, err)
	}
	m.form.commit(slices.Clone(m.rows))
	return nil
}

// Cancel closes the modal and keeps the form's list unchanged.
func (m *Modal) Cancel() { m.form.dismiss() }

// Request builds the order body for productID from v.
func (v Values) Request(productID int64) models.OrderRequest {
	rs := make([]models.OrderReceiver, 0, len(v.Receivers))
	for _, r := range v.Receivers {
		rs = append(rs, models.OrderReceiver{Name: r.Name, PhoneNumber: r.Phone, Quantity: r.Quantity})
	}
	return models.OrderRequest{
		ProductID:     productID,
		Message:       v.Message,
		MessageCardID: strconv.Itoa(v.SelectedCardID),
		OrdererName:   v.Sender,
		Receivers:     rs,
	}
}
