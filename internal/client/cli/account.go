package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

const dateLayout = "02 Jan 2006"

func (a *App) OrdersCmd(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	list, err := a.svc.Orders.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No orders yet.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, o := range list {
		rows = append(rows, []string{o.ID, formatDate(o.CreatedAt), strconv.Itoa(len(o.Items)),
			a.amount(o.TotalAmount), string(o.PaymentMethod), o.Status})
	}
	table([]string{"ID", "DATE", "ITEMS", "TOTAL", "PAYMENT", "STATUS"}, rows)
	return nil
}

func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	o, err := a.svc.Orders.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Order %s, %s, %s", o.ID, formatDate(o.CreatedAt), o.Status))
	rows := make([][]string, 0, len(o.Items))
	for _, it := range o.Items {
		rows = append(rows, []string{it.FabricID, it.Name, strconv.Itoa(it.Quantity), a.amount(it.Price)})
	}
	table([]string{"FABRIC", "NAME", "QTY", "PRICE"}, rows)
	addr := o.ShippingAddress
	printlnFn(fmt.Sprintf("total %s, paid by %s\nship to %s, %s, %s, %s %s",
		a.amount(o.TotalAmount), o.PaymentMethod, addr.Name, addr.Address, addr.City, addr.State, addr.ZipCode))
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

// ProfileCmd shows the profile, or with "edit" prompts for new values. An
// empty answer keeps the current value.
func (a *App) ProfileCmd(ctx context.Context, args []string) error {
	u, err := a.svc.Profile.Get(ctx)
	if err != nil {
		return err
	}
	switch {
	case len(args) == 0:
		printlnFn(fmt.Sprintf("%s <%s>\nrole: %s\ncity: %s\nphone: %s", u.Name, u.Email, u.Role, orDash(u.City), orDash(u.Phone)))
		return nil
	case len(args) == 1 && args[0] == "edit":
	default:
		return errUsage
	}

	p := models.Profile{Name: u.Name, City: u.City, Phone: u.Phone}
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Name", &p.Name}, {"City", &p.City}, {"Phone", &p.Phone},
	} {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.prompt, *f.dst), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}
	if _, err := a.svc.Profile.Update(ctx, p); err != nil {
		return err
	}
	printlnFn("Profile updated.")
	return nil
}

func (a *App) AddressesCmd(ctx context.Context, args []string) error {
	if len(args) == 2 {
		switch args[0] {
		case "rm":
			if err := a.svc.Profile.DeleteAddress(ctx, args[1]); err != nil {
				return err
			}
			printlnFn("Address removed.")
			return nil
		case "default":
			return a.makeDefault(ctx, args[1])
		}
	}
	if len(args) != 0 {
		return errUsage
	}

	list, err := a.svc.Profile.Addresses(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No saved addresses.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, ad := range list {
		def := ""
		if ad.IsDefault {
			def = "*"
		}
		rows = append(rows, []string{def, ad.ID, ad.Name, ad.Address, ad.City, ad.ZipCode, ad.Phone})
	}
	table([]string{"", "ID", "NAME", "ADDRESS", "CITY", "ZIP", "PHONE"}, rows)
	return nil
}

func (a *App) makeDefault(ctx context.Context, id string) error {
	list, err := a.svc.Profile.Addresses(ctx)
	if err != nil {
		return err
	}
	for _, ad := range list {
		if ad.ID != id {
			continue
		}
		ad.IsDefault = true
		if _, err := a.svc.Profile.UpdateAddress(ctx, ad); err != nil {
			return err
		}
		printlnFn("Default address set.")
		return nil
	}
	return fmt.Errorf("no saved address %q", id)
}

func (a *App) AddAddress(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	addr, err := a.promptAddress()
	if err != nil {
		return err
	}
	if addr.IsDefault, err = a.confirm("Make this the default address?", false); err != nil {
		return err
	}
	saved, err := a.svc.Profile.AddAddress(ctx, addr)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Address %s saved.", saved.ID))
	return nil
}

// Upload sends one or more local image files and prints the resulting URLs.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		url, err := a.svc.Uploads.Single(ctx, args[0], f)
		if err != nil {
			return err
		}
		printlnFn(url)
		return nil
	}

	files := make([]models.UploadedFile, 0, len(args))
	for _, p := range args {
		b, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, models.UploadedFile{Name: p, Content: b})
	}
	urls, err := a.svc.Uploads.Multiple(ctx, files)
	if err != nil {
		return err
	}
	printlnFn(strings.Join(urls, "\n"))
	return nil
}

func (a *App) Inquire(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	subject, err := getSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}
	msg, err := GetMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}
	inq, err := a.svc.Inquiries.Send(ctx, args[0], subject, msg)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Inquiry %s sent.", inq.ID))
	return nil
}

// InquiriesCmd lists inquiries or, with "read <id>" or "close <id>", changes
// the status of one of them.
func (a *App) InquiriesCmd(ctx context.Context, args []string) error {
	if len(args) == 2 {
		var (
			inq models.Inquiry
			err error
		)
		switch args[0] {
		case "read":
			inq, err = a.svc.Inquiries.MarkRead(ctx, args[1])
		case "close":
			inq, err = a.svc.Inquiries.Close(ctx, args[1])
		default:
			return errUsage
		}
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Inquiry %s is now %s.", inq.ID, inq.Status))
		return nil
	}
	if len(args) != 0 {
		return errUsage
	}

	list, err := a.svc.Inquiries.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No inquiries.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, q := range list {
		rows = append(rows, []string{q.ID, formatDate(q.CreatedAt), string(q.Status), q.Subject})
	}
	table([]string{"ID", "DATE", "STATUS", "SUBJECT"}, rows)
	return nil
}
