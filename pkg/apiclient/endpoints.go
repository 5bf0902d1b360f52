package apiclient

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
)

// Backend uç noktaları.
const (
	PathLogin       = "login"
	PathOrders      = "orders"
	PathBulkOrders  = "custom-orders"
	PathMessages    = "messages"
	PathSubscribers = "subscribers"
)

// AuthUser giriş yapan yönetici.
type AuthUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult başarılı girişte dönen token ve kullanıcı.
type LoginResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// Login yönetici girişi yapar.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := JSONBody(map[string]string{"email": email, "password": password})
	if err := c.Do(ctx, http.MethodPost, PathLogin, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitOrder ürün siparişini multipart olarak gönderir.
func (c *Client) SubmitOrder(ctx context.Context, payload *orderwizard.Payload, open orderwizard.Opener) error {
	return c.submit(ctx, PathOrders, payload, open)
}

// SubmitBulkOrder toplu (kurumsal) siparişi gönderir.
func (c *Client) SubmitBulkOrder(ctx context.Context, payload *orderwizard.Payload, open orderwizard.Opener) error {
	return c.submit(ctx, PathBulkOrders, payload, open)
}

func (c *Client) submit(ctx context.Context, path string, payload *orderwizard.Payload, open orderwizard.Opener) error {
	body := MultipartBody(func(w *multipart.Writer) error {
		return payload.WriteMultipart(w, open)
	})
	return c.Do(ctx, http.MethodPost, path, nil, body, nil)
}

// OrderSubmitter bir akışı doğru uç noktaya yönlendiren orderwizard.Submitter.
type OrderSubmitter struct {
	Client *Client
	Opener orderwizard.Opener
}

var _ orderwizard.Submitter = (*OrderSubmitter)(nil)

// Submit orderwizard.Submitter arayüzünü uygular.
func (s *OrderSubmitter) Submit(ctx context.Context, flow orderwizard.Flow, payload *orderwizard.Payload) error {
	if flow.Name == orderwizard.FlowBulk.Name {
		return s.Client.SubmitBulkOrder(ctx, payload, s.Opener)
	}
	return s.Client.SubmitOrder(ctx, payload, s.Opener)
}
