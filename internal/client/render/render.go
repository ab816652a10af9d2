// Package render draws the giftshop pages as plain text.
//
// Every string that came from the server passes through a bluemonday strict
// policy before it reaches the terminal, and won amounts are grouped the
// Korean way with golang.org/x/text.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/notify"
	"github.com/dmitrijs2005/giftshop/internal/client/order"
	"github.com/dmitrijs2005/giftshop/internal/client/validation"
)

const (
	NoPrice        = "가격 정보 없음"
	Loading        = "로딩 중..."
	NoReceivers    = "받는 사람이 없습니다. 받는 사람을 추가해주세요."
	NoThemes       = "테마가 없습니다."
	NoThemeInfo    = "테마 정보를 불러올 수 없습니다."
	ThemeLoading   = "테마 정보를 불러오는 중..."
	ProductLoading = "제품 정보를 불러오는 중..."
	NoProductInfo  = "제품 정보를 불러올 수 없습니다."
	NoOrders       = "주문 내역이 없습니다."
	PageNotFound   = "페이지를 찾을 수 없습니다."
)

type Renderer struct {
	w       io.Writer
	policy  *bluemonday.Policy
	printer *message.Printer
}

func New(w io.Writer) *Renderer {
	return &Renderer{
		w:       w,
		policy:  bluemonday.StrictPolicy(),
		printer: message.NewPrinter(language.Korean),
	}
}

// Text strips any markup from server supplied s.
func (r *Renderer) Text(s string) string {
	return html.UnescapeString(r.policy.Sanitize(s))
}

// Won formats n as a won amount, e.g. 30,000원.
func (r *Renderer) Won(n int) string {
	return r.printer.Sprintf("%d원", n)
}

// Price renders the selling price, followed by the discount rate and the
// struck basic price when a discount applies.
func (r *Renderer) Price(p *models.Price) string {
	if p == nil || p.SellingPrice <= 0 {
		return NoPrice
	}
	s := r.Won(p.SellingPrice)
	if p.Discounted() {
		s += fmt.Sprintf(" (%d%% ~%s~)", p.DiscountRate, r.Won(p.BasicPrice))
	}
	return s
}

func (r *Renderer) println(a ...any) {
	fmt.Fprintln(r.w, a...)
}

func (r *Renderer) Notice(n notify.Notice) {
	switch n.Kind {
	case notify.Success:
		r.println("[✓]", n.Message)
	case notify.Error:
		r.println("[!]", n.Message)
	default:
		r.println("[i]", n.Message)
	}
}

// RankingView is what the ranking section needs to draw itself.
type RankingView struct {
	Gender    models.GenderFilter
	Type      models.RankingType
	Loading   bool
	Products  []models.Product
	Empty     bool
	CanToggle bool
	ShowAll   bool
}

func (r *Renderer) Ranking(v RankingView) error {
	r.println("실시간 급상승 선물랭킹")
	r.println(filterBar(v))

	switch {
	case v.Loading:
		r.println(Loading)
		return nil
	case v.Empty:
		r.println("상품 목록이 없습니다")
		return nil
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for i, p := range v.Products {
		brand := ""
		if p.BrandInfo != nil {
			brand = r.Text(p.BrandInfo.Name)
		}
		fmt.Fprintf(tw, "%d\t#%d\t%s\t%s\t%s\n", i+1, p.ID, brand, r.Text(p.Name), r.Price(p.Price))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render ranking: %w", err)
	}

	if v.CanToggle {
		if v.ShowAll {
			r.println("[접기]  rank more")
		} else {
			r.println("[더보기]  rank more")
		}
	}
	return nil
}

func filterBar(v RankingView) string {
	var b strings.Builder
	for _, g := range models.GenderFilters {
		if g == v.Gender {
			fmt.Fprintf(&b, "[%s] ", g.Label())
		} else {
			fmt.Fprintf(&b, " %s  ", g.Label())
		}
	}
	b.WriteString("| ")
	for _, t := range models.RankingTypes {
		if t == v.Type {
			fmt.Fprintf(&b, "[%s] ", t.Label())
		} else {
			fmt.Fprintf(&b, " %s  ", t.Label())
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (r *Renderer) Themes(themes []models.Theme, loading bool, err error) error {
	r.println("선물 테마")
	switch {
	case loading:
		r.println(Loading)
		return nil
	case err != nil:
		r.println(NoThemeInfo)
		return nil
	case len(themes) == 0:
		r.println(NoThemes)
		return nil
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, t := range themes {
		fmt.Fprintf(tw, "#%d\t%s\n", t.ThemeID, r.Text(t.Name))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render themes: %w", err)
	}
	return nil
}

func (r *Renderer) ThemeHeader(d models.ThemeDetail) {
	r.println(strings.Repeat("=", 40))
	r.println(r.Text(d.Title))
	if d.Description != "" {
		r.println(r.Text(d.Description))
	}
	r.println(strings.Repeat("=", 40))
}

// ThemeProductsView is the accumulated product list of a theme page.
type ThemeProductsView struct {
	Items   []models.ThemeProduct
	Loading bool
	HasMore bool
	Err     error
}

func (r *Renderer) ThemeProducts(v ThemeProductsView) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, p := range v.Items {
		price := p.Price
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\n", p.ID, r.Text(p.BrandInfo.Name), r.Text(p.Name), r.Price(&price))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render theme products: %w", err)
	}

	switch {
	case v.Loading:
		r.println(Loading)
	case v.Err != nil:
		r.println("[!]", "상품을 불러오지 못했습니다.")
	case v.HasMore:
		r.println("-- scroll 로 더 보기 --")
	case len(v.Items) == 0:
		r.println("상품이 없습니다.")
	}
	return nil
}

// OrderView is the order page of one product.
type OrderView struct {
	Product  models.ProductSummary
	Values   order.Values
	LoggedIn bool
	Pending  bool
}

func (r *Renderer) Order(v OrderView) error {
	r.println("카드 템플릿 선택")
	for _, t := range order.Templates {
		mark := " "
		if t.ID == v.Values.SelectedCardID {
			mark = "*"
		}
		fmt.Fprintf(r.w, " %s %d  %s\n", mark, t.ID, t.DefaultMessage)
	}

	r.println()
	r.println("메시지:", v.Values.Message)
	r.println("보내는 사람:", v.Values.Sender)
	r.println()
	r.println("받는 사람")
	if err := r.Receivers(v.Values.Receivers); err != nil {
		return err
	}

	r.println()
	r.println("선택한 상품")
	fmt.Fprintf(r.w, "  %s / %s / %s\n", r.Text(v.Product.Name), r.Text(v.Product.BrandName), r.Won(v.Product.Price))

	switch {
	case v.Pending:
		r.println("[주문 처리 중...]")
	case v.LoggedIn:
		r.println("[주문하기]  submit")
	default:
		r.println("[로그인 후 주문하기]  submit")
	}
	return nil
}

func (r *Renderer) Receivers(rows []order.Receiver) error {
	if len(rows) == 0 {
		r.println(NoReceivers)
		return nil
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t이름\t전화번호\t수량")
	for i, rc := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", i+1, rc.Name, rc.Phone, rc.Quantity)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render receivers: %w", err)
	}
	return nil
}

// FieldErrors prints one line per failing field, sorted by path.
func (r *Renderer) FieldErrors(fe validation.FieldErrors) {
	for _, k := range fe.Fields() {
		fmt.Fprintf(r.w, "  %s: %s\n", k, fe[k])
	}
}

func (r *Renderer) MyPage(user models.UserInfo, orders []models.OrderRecord) error {
	fmt.Fprintf(r.w, "%s님 (%s)\n", user.Name, user.Email)
	r.println("주문 내역")
	if len(orders) == 0 {
		r.println(NoOrders)
		return nil
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d명\t%s\n",
			o.CreatedAt.Local().Format("2006-01-02 15:04"), r.Text(o.ProductName), o.Status, len(o.Receivers), o.OrderID)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render orders: %w", err)
	}
	return nil
}

func (r *Renderer) NotFound(path string) {
	r.println(PageNotFound, path)
}
