package restclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

var session = domain.Session{Role: domain.RoleSuperAdmin, Token: "tok"}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/api/super_admin", Timeout: 2 * time.Second}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{}, zerolog.Nop())
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "ftp://example.com/api"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestList_SendsHeadersAndDecodesRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/super_admin/users", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(headerRequestID))
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `[{"UserID":1,"first_name":"Ada","price":12.50},{"UserID":2}]`)
	})

	rows, err := c.List(context.Background(), domain.UsersResource, session, ports.ListOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ID("UserID"))
	assert.Equal(t, "Ada", rows[0].String("first_name"))
	assert.Equal(t, "12.50", rows[0].String("price"))
	assert.Equal(t, "2", rows[1].ID("UserID"))
}

func TestList_EmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	rows, err := c.List(context.Background(), domain.ProductsResource, session, ports.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestList_ServerPagingQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := c.List(context.Background(), domain.UsersResource, session, ports.ListOptions{Page: 2, Limit: 25})
	require.NoError(t, err)
}

func TestList_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"nope"}`, want: domain.ErrAuth},
		{name: "forbidden", status: http.StatusForbidden, want: domain.ErrAuth},
		{name: "server error", status: http.StatusInternalServerError, want: domain.ErrRequestFailed},
		{name: "not an array", status: http.StatusOK, body: `{"data":[]}`, want: domain.ErrDecode},
		{name: "garbage", status: http.StatusOK, body: `<html>`, want: domain.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			rows, err := c.List(context.Background(), domain.UsersResource, session, ports.ListOptions{})
			assert.Nil(t, rows)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestList_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url}, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.List(context.Background(), domain.UsersResource, session, ports.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestList_TimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.List(context.Background(), domain.UsersResource, session, ports.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestRequests_WithoutCredentialSendNothing(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})
	anon := domain.Session{Role: domain.RoleSuperAdmin}
	ctx := context.Background()

	_, err := c.List(ctx, domain.UsersResource, anon, ports.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrNoCredential)
	assert.ErrorIs(t, c.Create(ctx, domain.UsersResource, anon, domain.Payload{}), domain.ErrNoCredential)
	assert.ErrorIs(t, c.Update(ctx, domain.UsersResource, anon, "1", domain.Payload{}), domain.ErrNoCredential)
	assert.ErrorIs(t, c.Delete(ctx, domain.UsersResource, anon, "1"), domain.ErrNoCredential)
	assert.Zero(t, hits.Load())
}

func TestCreate_UserSendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/super_admin/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada", body["username"])
		assert.Equal(t, "secret", body["password_confirmation"])
		assert.NotContains(t, body, domain.MethodOverrideField)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.Create(context.Background(), domain.UsersResource, session, domain.Payload{
		Fields: map[string]string{"username": "ada", "password_confirmation": "secret"},
	})
	require.NoError(t, err)
}

func TestCreate_JSONResourceRejectsAttachment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	err := c.Create(context.Background(), domain.UsersResource, session, domain.Payload{
		Attachment: &domain.Attachment{Field: "avatar", FileName: "a.png", Content: []byte{1}},
	})
	assert.Error(t, err)
}

func TestCreate_ProductSendsMultipartWithImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/super_admin/products/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Widget", r.FormValue("name"))
		assert.Equal(t, "9.99", r.FormValue("price"))
		assert.Empty(t, r.FormValue(domain.MethodOverrideField))

		f, hdr, err := r.FormFile("product_image")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "w.png", hdr.Filename)
		assert.Equal(t, []byte("png-bytes"), content)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.Create(context.Background(), domain.ProductsResource, session, domain.Payload{
		Fields:     map[string]string{"name": "Widget", "price": "9.99"},
		Attachment: &domain.Attachment{Field: "product_image", FileName: "w.png", Content: []byte("png-bytes")},
	})
	require.NoError(t, err)
}

func TestCreate_ProductWithoutImageOmitsFilePart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("product_image")
		assert.ErrorIs(t, err, http.ErrMissingFile)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.Create(context.Background(), domain.ProductsResource, session, domain.Payload{
		Fields: map[string]string{"name": "Widget"},
	})
	require.NoError(t, err)
}

func TestUpdate_UserUsesPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/super_admin/users/7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	err := c.Update(context.Background(), domain.UsersResource, session, "7", domain.Payload{
		Fields: map[string]string{"email": "new@example.com"},
	})
	require.NoError(t, err)
}

func TestUpdate_ProductUsesMethodOverride(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/super_admin/products/3", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "PUT", r.FormValue(domain.MethodOverrideField))
		assert.Equal(t, "5", r.FormValue("stock"))
		w.WriteHeader(http.StatusOK)
	})

	err := c.Update(context.Background(), domain.ProductsResource, session, "3", domain.Payload{
		Fields: map[string]string{"stock": "5"},
	})
	require.NoError(t, err)
}

func TestMutations_ServerMessageBecomesValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"Email taken","errors":{"email":["The email has already been taken."],"username":"bad"}}`)
	})

	err := c.Update(context.Background(), domain.UsersResource, session, "1", domain.Payload{})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Email taken", ve.Message)
	assert.Equal(t, "The email has already been taken.", ve.Fields["email"])
	assert.Equal(t, "bad", ve.Fields["username"])
	assert.Equal(t, "Email taken", domain.UserMessage(err, domain.DefaultFailureMessage))
}

func TestMutations_UnstructuredFailureIsRequestFailed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `upstream down`)
	})

	err := c.Create(context.Background(), domain.UsersResource, session, domain.Payload{})

	var rf *domain.RequestFailedError
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, http.StatusBadGateway, rf.Status)
	assert.Equal(t, domain.DefaultFailureMessage, domain.UserMessage(err, domain.DefaultFailureMessage))
}

func TestDelete(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), domain.ProductsResource, session, "42"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/super_admin/products/42", path)
}

func TestDelete_FailureIsRequestFailed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
	})

	err := c.Delete(context.Background(), domain.UsersResource, session, "9")
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "toor" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"jwt","user":{"username":"root"}}`)
	})

	token, err := c.Login(context.Background(), "root", "toor")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)

	_, err = c.Login(context.Background(), "root", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
