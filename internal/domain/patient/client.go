package patient

import (
	"context"
	"net/url"

	"github.com/Nikkune/MediLabo/internal/platform/api"
)

// Client talks to the patient endpoints of the record service through the
// result channel.
type Client struct {
	ch *api.Channel
}

func NewClient(ch *api.Channel) *Client {
	return &Client{ch: ch}
}

// All fetches the full patient collection.
func (c *Client) All(ctx context.Context) api.Result[[]Patient] {
	return api.Get[[]Patient](ctx, c.ch, "/patient/all", nil)
}

// Create registers a new patient and returns the server-acknowledged record.
func (c *Client) Create(ctx context.Context, p Payload) api.Result[Patient] {
	return api.Post[Patient](ctx, c.ch, "/patient", p, nil)
}

// Update rewrites an existing patient, identified by the payload's
// firstName+lastName natural key.
func (c *Client) Update(ctx context.Context, p Payload) api.Result[Patient] {
	return api.Put[Patient](ctx, c.ch, "/patient", p, nil)
}

// Delete removes a patient by natural key.
func (c *Client) Delete(ctx context.Context, firstName, lastName string) api.Result[struct{}] {
	q := url.Values{}
	q.Set("firstName", firstName)
	q.Set("lastName", lastName)
	return api.Delete[struct{}](ctx, c.ch, "/patient", q)
}
