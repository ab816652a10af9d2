package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/order"
	"github.com/dmitrijs2005/giftshop/internal/client/render"
	"github.com/dmitrijs2005/giftshop/internal/client/router"
	"github.com/dmitrijs2005/giftshop/internal/client/validation"
)

var ErrNotOnOrderPage = errors.New("not on an order page")

// orderPage returns the form and product of the order page being shown.
func (a *App) orderPage() (*order.Form, *models.ProductSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current.Page != router.PageOrder || a.form == nil {
		printlnFn("주문 페이지가 아닙니다. 'order <상품번호>' 로 이동하세요.")
		return nil, nil, ErrNotOnOrderPage
	}
	st := a.summary.State()
	if !st.HasData {
		return a.form, nil, nil
	}
	p := st.Data
	return a.form, &p, nil
}

func (a *App) renderOrder() error {
	form, product, err := a.orderPage()
	if err != nil {
		return err
	}
	if product == nil {
		printlnFn(render.NoProductInfo)
		return nil
	}
	return a.render.Order(render.OrderView{
		Product:  *product,
		Values:   form.Values(),
		LoggedIn: a.isLoggedIn(),
		Pending:  a.orders.Submitting(),
	})
}

// SelectCard picks a card template; the message resets to its text.
func (a *App) SelectCard(ctx context.Context, args []string) error {
	form, _, err := a.orderPage()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: card <id>")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("카드 번호는 숫자입니다:", args[0])
		return err
	}
	if _, ok := order.FindTemplate(id); !ok {
		printlnFn("없는 카드입니다:", id)
		return nil
	}
	form.SelectCard(id)
	return a.renderOrder()
}

func (a *App) EditMessage(ctx context.Context) error {
	form, _, err := a.orderPage()
	if err != nil {
		return err
	}
	msg, err := getMultiline(a.reader, "메시지를 입력하세요.", a.out)
	if err != nil {
		return err
	}
	form.SetMessage(msg)
	return nil
}

func (a *App) EditSender(ctx context.Context) error {
	form, _, err := a.orderPage()
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "보내는 사람 (실제 선물 발송 시 발신자이름으로 반영되는 정보입니다.)", a.out)
	if err != nil {
		return err
	}
	form.SetSender(name)
	return nil
}

// EditReceivers opens the receiver modal as a nested prompt:
//
//	add                         append an empty row
//	set <n> <name> <phone> <qty> fill row n (1-based)
//	rm <n>                      remove row n
//	list                        show rows
//	done                        validate and apply
//	cancel                      discard changes
func (a *App) EditReceivers(ctx context.Context) error {
	form, _, err := a.orderPage()
	if err != nil {
		return err
	}

	m := form.OpenModal()
	printlnFn("받는 사람 (최대 10명, 전화번호 중복 불가). add | set <n> <이름> <전화번호> <수량> | rm <n> | list | done | cancel")

	for {
		line, err := getSimpleText(a.reader, "receivers", a.out)
		if err != nil {
			m.Cancel()
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "add":
			if err := m.Add(); err != nil {
				printlnFn("최대 10명까지 추가 할 수 있어요.")
				continue
			}
			_ = a.render.Receivers(m.Rows())

		case "set":
			if len(parts) != 5 {
				printlnFn("Usage: set <n> <이름> <전화번호> <수량>")
				continue
			}
			n, err1 := strconv.Atoi(parts[1])
			qty, err2 := strconv.Atoi(parts[4])
			if err1 != nil || err2 != nil {
				printlnFn("번호와 수량은 숫자입니다.")
				continue
			}
			if err := m.Update(n-1, order.Receiver{Name: parts[2], Phone: parts[3], Quantity: qty}); err != nil {
				printlnFn("없는 행입니다:", n)
				continue
			}
			_ = a.render.Receivers(m.Rows())

		case "rm":
			if len(parts) != 2 {
				printlnFn("Usage: rm <n>")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil || m.Remove(n-1) != nil {
				printlnFn("없는 행입니다:", parts[1])
				continue
			}
			_ = a.render.Receivers(m.Rows())

		case "list":
			_ = a.render.Receivers(m.Rows())

		case "done":
			err := m.Complete()
			if err == nil {
				return a.render.Receivers(form.Receivers())
			}
			var fe validation.FieldErrors
			if errors.As(err, &fe) {
				a.render.FieldErrors(fe)
			} else {
				printlnFn("받는 사람을 추가해주세요.")
			}

		case "cancel":
			m.Cancel()
			return nil

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}

// Submit places the order shown on the current page.
func (a *App) Submit(ctx context.Context) error {
	form, product, err := a.orderPage()
	if err != nil {
		return err
	}

	out, err := a.orders.Submit(ctx, product, form)

	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		a.render.FieldErrors(fe)
		return err
	}
	if out.Redirect != nil {
		return a.navigate(ctx, out.Redirect.Path, out.Redirect.State)
	}
	if err != nil {
		return err
	}
	if out.Response != nil {
		printlnFn("주문번호:", out.Response.OrderID)
	}
	return nil
}
