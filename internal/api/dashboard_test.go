package api_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/service"
	"github.com/99minutos/admin-dashboard/internal/infrastructure/acl"
	"github.com/99minutos/admin-dashboard/internal/infrastructure/restclient"
)

type recordingNotifier struct{ got []domain.Notification }

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) {
	r.got = append(r.got, n)
}

func (r *recordingNotifier) last() domain.Notification {
	if len(r.got) == 0 {
		return domain.Notification{}
	}
	return r.got[len(r.got)-1]
}

func newDashboard(t *testing.T, f *fixture, username, password string) (*service.Dashboard, *recordingNotifier) {
	t.Helper()
	session, err := service.SessionFromToken(f.login(t, username, password))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	client, err := restclient.New(restclient.Config{
		BaseURL: f.server.URL + "/api/super_admin/",
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	n := &recordingNotifier{}
	return service.NewDashboard(client, session, n, acl.DefaultPolicy(), zerolog.Nop()), n
}

func findRow(rows []domain.Row, field, value string) domain.Row {
	for _, r := range rows {
		if r.String(field) == value {
			return r
		}
	}
	return nil
}

func TestDashboard_AddProductWithImage(t *testing.T) {
	f := newFixture(t)
	d, n := newDashboard(t, f, "root", "rootpass")
	ctx := context.Background()

	if err := d.RefreshAll(ctx); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}
	screen, ok := d.Screen("products")
	if !ok {
		t.Fatal("super admin must see products")
	}
	if len(screen.List.Rows()) != 0 {
		t.Fatalf("expected empty catalogue")
	}

	screen.Add.Open(nil)
	for k, v := range map[string]string{"name": "Widget", "description": "A widget", "price": "9.99", "stock": "3"} {
		if err := screen.Add.SetField(k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := screen.Add.SetAttachment(&domain.Attachment{FileName: "widget.png", Content: []byte("png-bytes")}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := screen.Add.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if n.last().Message != "Product Added Successfully" {
		t.Fatalf("notification = %+v", n.last())
	}
	row := findRow(screen.List.Rows(), "name", "Widget")
	if row == nil {
		t.Fatalf("refreshed list lacks the new product: %v", screen.List.Rows())
	}
	if row.ID("ProductID") == "" {
		t.Fatalf("new row has no ProductID: %v", row)
	}
	p := domain.ProductFromRow(row)
	if p.Price != 9.99 || p.Stock != 3 {
		t.Fatalf("product = %+v", p)
	}
	image, _ := row["image"].(map[string]any)
	if image["file_name"] != "widget.png" {
		t.Fatalf("image = %v", row["image"])
	}
}

func TestDashboard_EditUserEmail(t *testing.T) {
	f := newFixture(t)
	d, n := newDashboard(t, f, "root", "rootpass")
	ctx := context.Background()

	screen, _ := d.Screen("users")
	if _, err := screen.List.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	before := findRow(screen.List.Rows(), "username", "carl")
	if before == nil {
		t.Fatalf("carl not listed: %v", screen.List.Rows())
	}

	screen.Edit.Open(before)
	if err := screen.Edit.SetField("email", "carl@new.example.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if err := screen.Edit.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if n.last().Message != "User Information Edited Successfully" {
		t.Fatalf("notification = %+v", n.last())
	}
	after := findRow(screen.List.Rows(), "username", "carl")
	if after == nil || after.String("email") != "carl@new.example.com" {
		t.Fatalf("row after edit = %v", after)
	}
	for _, field := range []string{"UserID", "first_name", "last_name", "role"} {
		if after.String(field) != before.String(field) {
			t.Fatalf("%s changed from %q to %q", field, before.String(field), after.String(field))
		}
	}
	if got := domain.UserFromRow(after).FullName(); got != "Carl Customer" {
		t.Fatalf("full name = %q", got)
	}
}

func TestDashboard_ServerMessageReachesNotification(t *testing.T) {
	f := newFixture(t)
	d, n := newDashboard(t, f, "root", "rootpass")
	ctx := context.Background()

	screen, _ := d.Screen("users")
	screen.Add.Open(nil)
	for k, v := range map[string]string{
		"last_name": "Dup", "first_name": "Carl", "username": "carl", "email": "dup@example.com",
		"password": "secret1", "password_confirmation": "secret1",
	} {
		_ = screen.Add.SetField(k, v)
	}

	err := screen.Add.Submit(ctx)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n.last().Level != domain.LevelFailure || n.last().Message != "The username has already been taken." {
		t.Fatalf("notification = %+v", n.last())
	}
	if screen.Add.State() != domain.FormOpen {
		t.Fatalf("form must stay open, state = %s", screen.Add.State())
	}
}

func TestDashboard_DeleteUser(t *testing.T) {
	f := newFixture(t)
	d, n := newDashboard(t, f, "root", "rootpass")
	ctx := context.Background()

	screen, _ := d.Screen("users")
	_, _ = screen.List.Refresh(ctx)
	carl := findRow(screen.List.Rows(), "username", "carl")

	screen.Delete.Open(carl.ID("UserID"))
	if err := screen.Delete.Confirm(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if n.last().Message != "User deleted successfully" {
		t.Fatalf("notification = %+v", n.last())
	}
	if findRow(screen.List.Rows(), "username", "carl") != nil {
		t.Fatal("deleted user still listed")
	}

	screen.Delete.Open(carl.ID("UserID"))
	if err := screen.Delete.Confirm(ctx); !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("second delete = %v, want request failed", err)
	}
	if n.last().Message != "Error deleting user" {
		t.Fatalf("notification = %+v", n.last())
	}
}

func TestDashboard_CustomerSeesOnlyHome(t *testing.T) {
	f := newFixture(t)
	d, _ := newDashboard(t, f, "carl", "carlpass")

	if d.Landing() != domain.RouteHome {
		t.Fatalf("landing = %s", d.Landing())
	}
	if len(d.Screens()) != 0 {
		t.Fatalf("customer screens = %d, want 0", len(d.Screens()))
	}
	menu := d.Menu()
	if len(menu) != 1 || menu[0].Title != "Home" {
		t.Fatalf("menu = %+v", menu)
	}
}
