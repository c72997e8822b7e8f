package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
)

func (a *App) promptRole() (models.Role, error) {
	s, err := getSimpleText(a.reader, "Account type (customer, tailor, shop)", a.out)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return models.RoleCustomer, nil
	}
	r, err := models.ParseRole(s)
	if err != nil {
		return 0, common.NewValidationError("role", "must be customer, tailor or shop")
	}
	return r, nil
}

// Register prompts for the account fields and creates the account. The
// password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	var req models.RegisterRequest
	var err error

	if req.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	if req.Role, err = a.promptRole(); err != nil {
		return err
	}
	if req.City, err = getSimpleText(a.reader, "City (optional)", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
		return err
	}

	if err := a.svc.Session.Register(ctx, req); err != nil {
		return err
	}
	u, _ := a.currentUser()
	printlnFn(fmt.Sprintf("Welcome, %s! Your %s account is ready.", u.Name, u.Role))
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := a.promptRole()
	if err != nil {
		return err
	}

	if err := a.svc.Session.Login(ctx, email, string(password), role); err != nil {
		return err
	}
	u, _ := a.currentUser()
	a.log.Info(ctx, "user signed in", "user_id", u.ID)
	printlnFn(fmt.Sprintf("Signed in as %s (%s)", u.Name, u.Role))

	if u.Role == models.RoleCustomer {
		if err := a.svc.Cart.Load(ctx); err != nil {
			a.log.Warn(ctx, "cart load after login failed", "error", err)
		}
	}
	return nil
}

// Logout forgets the session and the local cart copy.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.svc.Session.Logout(ctx); err != nil {
		return err
	}
	a.svc.Cart.Reset()
	printlnFn("Signed out.")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	u, ok := a.currentUser()
	if !ok {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>\nrole: %s\ncity: %s\nphone: %s", u.Name, u.Email, u.Role, orDash(u.City), orDash(u.Phone)))
	return nil
}
