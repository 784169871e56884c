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
	t(key string) string

	Register(ctx context.Context) error
	Verify(ctx context.Context, token string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context, token string) error
	ChangePassword(ctx context.Context) error
	Me(ctx context.Context) error
	Lang(ctx context.Context, code string) error

	Products(ctx context.Context, page string) error
	Search(ctx context.Context, text string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpSignedOut = "register, verify <token>, login, forgot, reset <token>, lang [code], help, exit"
	helpSignedIn  = "products [page], search <text>, next, prev, show <id>, add, edit <id>, delete <id>, me, passwd, lang [code], logout, help, exit"
)

// runREPL starts a read–eval–print loop for the faktura CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest of the line as its argument, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on scanner EOF, when ctx is cancelled or when the user types "exit"
// or "quit".
//
// Commands
//
//	Signed out:
//	  - register           create an account
//	  - verify <token>     confirm an email address
//	  - login              authenticate
//	  - forgot             request a password reset email
//	  - reset <token>      set a new password with a reset token
//
//	Signed in:
//	  - products [page]    list products
//	  - search <text>      filter the list (debounced)
//	  - next | prev        move through the pages
//	  - show <id>          product details
//	  - add | edit <id>    product form
//	  - delete <id>        remove a product
//	  - me                 current user
//	  - passwd             change password
//	  - logout             sign out
//
//	Always: help, lang [code], exit | quit.
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("faktura (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "verify":
			_ = a.Verify(ctx, arg)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx, arg)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "me":
			_ = a.Me(ctx)

		case "lang":
			_ = a.Lang(ctx, arg)

		case "products", "l", "list":
			_ = a.Products(ctx, arg)

		case "search":
			_ = a.Search(ctx, arg)

		case "next":
			_ = a.Next(ctx)

		case "prev":
			_ = a.Prev(ctx)

		case "show":
			_ = a.Show(ctx, arg)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn(a.t("unknown_command"), cmd)
		}
	}
}
