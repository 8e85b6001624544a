package dashboard

import (
	"context"
	"fmt"
	"strings"

	"wtask/internal/notify"
	"wtask/internal/session"
)

// SignIn signs in and reports the outcome on the notification queue.
func (d *Dashboard) SignIn(ctx context.Context, login, password string) error {
	tok, err := d.Session.SignIn(ctx, login, password)
	if err != nil {
		d.Notes.Push(notify.Error, fmt.Sprintf("login failed: %v", err))
		return err
	}
	name, ok := session.Identity(tok)
	if !ok {
		name = login
	}
	d.Notes.Push(notify.Success, fmt.Sprintf("logged in as %s", name))
	return nil
}

// Register creates an account and reports the outcome. The caller still has
// to sign in.
func (d *Dashboard) Register(ctx context.Context, login, password string) error {
	if err := d.Session.Register(ctx, login, password); err != nil {
		d.Notes.Push(notify.Error, fmt.Sprintf("registration failed: %v", err))
		return err
	}
	d.Notes.Push(notify.Success, fmt.Sprintf("account %s created, log in to continue", strings.TrimSpace(login)))
	return nil
}

// SignOut ends the session at the user's request. It returns false when
// nobody was signed in.
func (d *Dashboard) SignOut() bool {
	return d.Session.SignOut(session.Manual)
}
