package note

import (
	"context"
	"net/url"

	"github.com/Nikkune/MediLabo/internal/platform/api"
)

// Client talks to the notes endpoints of the record service.
type Client struct {
	ch *api.Channel
}

func NewClient(ch *api.Channel) *Client {
	return &Client{ch: ch}
}

// List fetches every note for one patient by natural key.
func (c *Client) List(ctx context.Context, firstName, lastName string) api.Result[[]Note] {
	return api.Get[[]Note](ctx, c.ch, "/notes", nameQuery(firstName, lastName))
}

// Create adds a note to a patient's history.
func (c *Client) Create(ctx context.Context, firstName, lastName, content string) api.Result[Note] {
	body := createPayload{FirstName: firstName, LastName: lastName, Note: content}
	return api.Post[Note](ctx, c.ch, "/notes", body, nil)
}

// Update rewrites the text of a note by id.
func (c *Client) Update(ctx context.Context, id, content string) api.Result[Note] {
	q := url.Values{}
	q.Set("id", id)
	return api.Put[Note](ctx, c.ch, "/notes", updatePayload{Note: content}, q)
}

// Delete removes a note by id.
func (c *Client) Delete(ctx context.Context, id string) api.Result[struct{}] {
	q := url.Values{}
	q.Set("id", id)
	return api.Delete[struct{}](ctx, c.ch, "/notes", q)
}

func nameQuery(firstName, lastName string) url.Values {
	q := url.Values{}
	q.Set("firstName", firstName)
	q.Set("lastName", lastName)
	return q
}
