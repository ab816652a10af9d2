package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Navigate(ctx context.Context, path string) error
	Refresh(ctx context.Context) error
	Rank(ctx context.Context, args []string) error
	Themes(ctx context.Context) error
	Scroll(ctx context.Context) error
	SelectCard(ctx context.Context, args []string) error
	EditMessage(ctx context.Context) error
	EditSender(ctx context.Context) error
	EditReceivers(ctx context.Context) error
	Submit(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpText = `Available commands:
  home | go <path>        open a page (/, /login, /my, /order/<id>, /themes/<id>)
  rank gender <g>         all, male, female, teen
  rank type <t>           wanted, given, wished
  rank more               expand or collapse the ranking
  themes                  list gift themes
  theme <id>              open a theme
  scroll                  load more products of the open theme
  order <id>              open the order page of a product
  card <id>               pick a message card
  message | sender        edit the card message / sender name
  receivers               edit receivers
  submit                  place the order
  refresh                 reload the current page
  my                      my page`

// runREPL starts a simple read–eval–print loop for the giftshop CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers show
// their own notices and log. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gift %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			if a.isLoggedIn() {
				printlnFn("  logout                  sign out")
			} else {
				printlnFn("  login                   sign in")
			}

		case "home":
			_ = a.Navigate(ctx, "/")

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Navigate(ctx, args[0])

		case "my":
			_ = a.Navigate(ctx, "/my")

		case "theme":
			if len(args) == 0 {
				printlnFn("Usage: theme <id>")
				continue
			}
			_ = a.Navigate(ctx, "/themes/"+args[0])

		case "order":
			if len(args) == 0 {
				printlnFn("Usage: order <id>")
				continue
			}
			_ = a.Navigate(ctx, "/order/"+args[0])

		case "refresh":
			_ = a.Refresh(ctx)

		case "rank":
			_ = a.Rank(ctx, args)

		case "themes":
			_ = a.Themes(ctx)

		case "scroll":
			_ = a.Scroll(ctx)

		case "card":
			_ = a.SelectCard(ctx, args)

		case "message":
			_ = a.EditMessage(ctx)

		case "sender":
			_ = a.EditSender(ctx)

		case "receivers":
			_ = a.EditReceivers(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
