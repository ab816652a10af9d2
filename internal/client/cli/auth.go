package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/giftshop/internal/client/api"
	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/client/notify"
	"github.com/dmitrijs2005/giftshop/internal/client/router"
	"github.com/dmitrijs2005/giftshop/internal/client/validation"
	"github.com/dmitrijs2005/giftshop/internal/cryptox"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

const msgLoginSucceeded = "로그인에 성공했습니다!"

// Login prompts for e-mail and password, validates them and signs in.
//
// On success the session is persisted and the app navigates to the path
// remembered by the login redirect, or home. API failures are shown as a
// notice: the server's message for 4xx, a generic one otherwise.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "이메일", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	creds := models.LoginRequest{Email: email, Password: string(password)}
	if err := a.validate.Struct(creds); err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			a.render.FieldErrors(fe)
		}
		return err
	}

	user, err := a.api.Login(ctx, creds)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		a.showAPIError(err)
		return err
	}

	if err := a.session.Login(ctx, user); err != nil {
		a.logger.Warn(ctx, "session not stored", "email", email, "error", err)
		a.notice(notify.Error, api.MsgLoginFailed)
		return fmt.Errorf("failed to store session[%s]: %w", email, err)
	}
	a.notice(notify.Success, msgLoginSucceeded)

	a.mu.Lock()
	back := ""
	if a.current.Page == router.PageLogin {
		back = a.navState[router.RedirectKey]
	}
	a.mu.Unlock()

	if back == "" {
		back = "/"
	}
	return a.Navigate(ctx, back)
}

// Logout ends the session. A page that needs a session is left for home.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("로그아웃되었습니다.")

	a.mu.Lock()
	page := a.current.Page
	a.mu.Unlock()

	if page == router.PageMy {
		return a.Navigate(ctx, "/")
	}
	return nil
}
