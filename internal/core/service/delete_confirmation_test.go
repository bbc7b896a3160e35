package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

func TestDeleteConfirmation_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		level   domain.NotificationLevel
		message string
	}{
		{name: "success", level: domain.LevelSuccess, message: "Product deleted successfully"},
		{name: "failure", err: &domain.RequestFailedError{Status: 500}, level: domain.LevelFailure, message: "Error deleting product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{deleteErr: tt.err}
			n := &stubNotifier{}
			r := &refreshCounter{}
			d := NewDeleteConfirmation(client, domain.ProductsResource, superAdmin, n, r.refresh, zerolog.Nop())

			d.Open("12")
			if open, id := d.IsOpen(); !open || id != "12" {
				t.Fatalf("IsOpen = %v %q", open, id)
			}

			err := d.Confirm(context.Background())
			if tt.err == nil && err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}

			if client.count("delete") != 1 {
				t.Fatalf("deletes = %d, want exactly 1", client.count("delete"))
			}
			if call, _ := client.last("delete"); call.ID != "12" {
				t.Fatalf("deleted id = %q, want 12", call.ID)
			}
			if r.count() != 1 {
				t.Fatalf("refreshes = %d, want exactly 1", r.count())
			}
			note, count := n.only()
			if count != 1 || note.Level != tt.level || note.Message != tt.message {
				t.Fatalf("notification = %+v (%d)", note, count)
			}
			if open, _ := d.IsOpen(); open {
				t.Fatal("prompt must close after confirm")
			}
		})
	}
}

func TestDeleteConfirmation_CancelDoesNotDelete(t *testing.T) {
	client := &stubClient{}
	r := &refreshCounter{}
	d := NewDeleteConfirmation(client, domain.UsersResource, superAdmin, &stubNotifier{}, r.refresh, zerolog.Nop())

	d.Open("3")
	d.Cancel(context.Background())

	if client.count("delete") != 0 {
		t.Fatal("cancel must not delete")
	}
	if r.count() != 1 {
		t.Fatalf("refreshes = %d, want 1", r.count())
	}
	if err := d.Confirm(context.Background()); !errors.Is(err, domain.ErrNothingToDelete) {
		t.Fatalf("expected ErrNothingToDelete, got %v", err)
	}
	if client.count("delete") != 0 {
		t.Fatal("confirm on a closed prompt must not delete")
	}
}
