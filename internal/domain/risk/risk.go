// Package risk renders the server-computed risk level. The client never
// derives risk itself; it only fetches the level and maps it to a severity
// and a display color.
package risk

import (
	"context"
	"net/url"

	"github.com/Nikkune/MediLabo/internal/platform/api"
)

// Level is the risk enumeration as the service labels it.
type Level string

const (
	LevelNone       Level = "None"
	LevelBorderline Level = "Borderline"
	LevelInDanger   Level = "In Danger"
	LevelEarlyOnset Level = "Early onset"
)

// Parse maps a wire label to a Level. Unrecognized values land on the safe
// default.
func Parse(label string) Level {
	switch Level(label) {
	case LevelBorderline, LevelInDanger, LevelEarlyOnset:
		return Level(label)
	default:
		return LevelNone
	}
}

// Severity orders levels for display, highest first: In Danger, Early onset,
// Borderline, None. Unknown levels rank lowest.
func (l Level) Severity() int {
	switch l {
	case LevelInDanger:
		return 3
	case LevelEarlyOnset:
		return 2
	case LevelBorderline:
		return 1
	default:
		return 0
	}
}

// Color is the chip color a level renders with.
type Color string

const (
	ColorError   Color = "error"
	ColorWarning Color = "warning"
	ColorInfo    Color = "info"
	ColorSuccess Color = "success"
)

// Color maps a level to its chip color; anything unrecognized renders as the
// safe success color.
func (l Level) Color() Color {
	switch l {
	case LevelInDanger:
		return ColorError
	case LevelEarlyOnset:
		return ColorWarning
	case LevelBorderline:
		return ColorInfo
	default:
		return ColorSuccess
	}
}

// Client fetches risk levels through the result channel.
type Client struct {
	ch *api.Channel
}

func NewClient(ch *api.Channel) *Client {
	return &Client{ch: ch}
}

// Get fetches the risk level for one patient by natural key. The endpoint
// returns a bare label.
func (c *Client) Get(ctx context.Context, firstName, lastName string) api.Result[Level] {
	q := url.Values{}
	q.Set("firstName", firstName)
	q.Set("lastName", lastName)
	res := api.Get[string](ctx, c.ch, "/risk", q)
	if failure, failed := res.Failure(); failed {
		return api.Fail[Level](failure)
	}
	return api.OK(Parse(res.Value()))
}
