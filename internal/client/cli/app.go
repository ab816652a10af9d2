package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/giftshop/internal/client/api"
	"github.com/dmitrijs2005/giftshop/internal/client/config"
	"github.com/dmitrijs2005/giftshop/internal/client/localdb"
	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/notify"
	"github.com/dmitrijs2005/giftshop/internal/client/order"
	"github.com/dmitrijs2005/giftshop/internal/client/pager"
	"github.com/dmitrijs2005/giftshop/internal/client/ranking"
	"github.com/dmitrijs2005/giftshop/internal/client/render"
	"github.com/dmitrijs2005/giftshop/internal/client/resource"
	"github.com/dmitrijs2005/giftshop/internal/client/router"
	"github.com/dmitrijs2005/giftshop/internal/client/scroll"
	"github.com/dmitrijs2005/giftshop/internal/client/session"
	"github.com/dmitrijs2005/giftshop/internal/client/storage"
	"github.com/dmitrijs2005/giftshop/internal/client/validation"
	"github.com/dmitrijs2005/giftshop/internal/logging"
)

// API is the part of api.Client the pages use.
type API interface {
	Login(ctx context.Context, creds models.LoginRequest) (models.UserInfo, error)
	CreateOrder(ctx context.Context, order models.OrderRequest, token string) (models.OrderResponse, error)
	FetchProductSummary(ctx context.Context, productID int64) (models.ProductSummary, error)
	FetchRankingProducts(ctx context.Context, gender models.GenderFilter, rt models.RankingType) ([]models.Product, error)
	FetchThemes(ctx context.Context) ([]models.Theme, error)
	FetchThemeDetail(ctx context.Context, themeID int64) (models.ThemeDetail, error)
	FetchThemeProducts(ctx context.Context, themeID int64, cursor, limit int) (models.ThemeProductsPage, error)
}

type OrderHistory interface {
	Save(ctx context.Context, rec models.OrderRecord) error
	ListByEmail(ctx context.Context, email string, limit int) ([]models.OrderRecord, error)
}

// viewportHeight is the pretend terminal height used for scroll geometry.
const viewportHeight = 600

// maxRedirects bounds redirect chains during navigation.
const maxRedirects = 5

var ErrTooManyRedirects = errors.New("too many redirects")

type noUnit struct{}

type App struct {
	config   *config.Config
	api      API
	session  *session.Store
	history  OrderHistory
	logger   logging.Logger
	validate *validation.Validator
	router   *router.Router
	render   *render.Renderer
	notifier notify.Notifier
	reader   *bufio.Reader
	out      io.Writer

	ranking     *ranking.Section
	themes      *resource.Resource[noUnit, []models.Theme]
	themeDetail *resource.Resource[int64, models.ThemeDetail]
	summary     *resource.Resource[int64, models.ProductSummary]
	pager       *pager.Pager
	signal      *scroll.Signal
	orders      *order.Workflow

	mu       sync.Mutex
	current  router.Match
	path     string
	navState map[string]string
	trigger  *scroll.Trigger
	form     *order.Form
	formFor  int64

	closers []func() error
}

type deps struct {
	config  *config.Config
	api     API
	session *session.Store
	history OrderHistory
	logger  logging.Logger
	in      io.Reader
	out     io.Writer
}

// NewApp opens local storage, restores the session and connects the API
// client described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(os.Stderr, level)

	repos, err := localdb.Open(ctx, c.StoragePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.StoragePath, "error", err)
		return nil, err
	}

	client, err := api.New(c.APIBaseURL, api.WithLogger(logger))
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := newApp(deps{
		config:  c,
		api:     client,
		session: session.New(ctx, storage.New(repos.Items), logger),
		history: repos.Orders,
		logger:  logger,
		in:      os.Stdin,
		out:     os.Stdout,
	})
	a.closers = append(a.closers, repos.Close)
	return a, nil
}

func newApp(d deps) *App {
	a := &App{
		config:   d.config,
		api:      d.api,
		session:  d.session,
		history:  d.history,
		logger:   d.logger,
		validate: validation.New(),
		router:   router.New(),
		render:   render.New(d.out),
		reader:   bufio.NewReader(d.in),
		out:      d.out,
		signal:   scroll.NewSignal(),
	}
	a.notifier = notify.Func(a.render.Notice)

	a.ranking = ranking.New(d.api)
	a.themes = resource.New(func(ctx context.Context, _ noUnit) ([]models.Theme, error) {
		return d.api.FetchThemes(ctx)
	})
	a.themeDetail = resource.New(d.api.FetchThemeDetail)
	a.summary = resource.New(d.api.FetchProductSummary)
	a.pager = pager.New(d.api.FetchThemeProducts, d.config.PageSize, d.logger)
	a.orders = order.NewWorkflow(d.api, d.session, d.history, a.notifier, d.logger)
	return a
}

// Run shows the home page and blocks in the REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	cancel := a.session.Subscribe(func(u *models.UserInfo) {
		if u == nil {
			a.logger.Info(ctx, "session ended")
		} else {
			a.logger.Info(ctx, "session started", "email", u.Email)
		}
	})
	defer cancel()

	printlnFn("선물하기 CLI (type 'help' for commands)")
	if err := a.Navigate(ctx, "/"); err != nil {
		a.logger.Warn(ctx, "home page failed", "error", err)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

// Close releases local storage.
func (a *App) Close() error {
	a.mu.Lock()
	if a.trigger != nil {
		a.trigger.Close()
		a.trigger = nil
	}
	a.mu.Unlock()

	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

func (a *App) status() string {
	a.mu.Lock()
	path := a.path
	a.mu.Unlock()

	var b strings.Builder
	if u := a.session.User(); u != nil {
		b.WriteString(u.Name + " ")
	}
	b.WriteString(path)
	return fmt.Sprintf("(%s)", b.String())
}

func (a *App) notice(kind notify.Kind, msg string) {
	a.notifier.Notify(notify.Notice{Kind: kind, Message: msg})
}

func (a *App) showAPIError(err error) {
	a.notice(notify.Error, api.UserMessage(err))
}
