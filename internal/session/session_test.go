package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimozcann/SiteHunter/internal/httpclient"
	"github.com/selimozcann/SiteHunter/internal/session"
	"github.com/selimozcann/SiteHunter/internal/session/sessiontest"
)

func TestEvaluateSwallowsFailures(t *testing.T) {
	b := &sessiontest.Browser{Scripts: map[string]any{
		"ok":   map[string]any{"innerWidth": 390},
		"null": nil,
	}}
	s := session.New(b, nil, session.Options{})
	ctx := context.Background()

	var out struct {
		InnerWidth int `json:"innerWidth"`
	}
	assert.True(t, s.Evaluate(ctx, "ok", &out))
	assert.Equal(t, 390, out.InnerWidth)

	assert.False(t, s.Evaluate(ctx, "null", &out))
	assert.False(t, s.Evaluate(ctx, "missing", &out))

	s2 := session.New(sessiontest.Failing(), nil, session.Options{})
	assert.False(t, s2.Evaluate(ctx, "ok", &out))
}

func TestNavigateWrapsError(t *testing.T) {
	b := &sessiontest.Browser{NavigateErr: context.DeadlineExceeded}
	s := session.New(b, nil, session.Options{Target: "https://example.org/"})

	err := s.Navigate(context.Background(), "https://example.org/")
	var navErr *session.NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, "https://example.org/", navErr.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSetViewportIsBestEffort(t *testing.T) {
	s := session.New(sessiontest.Failing(), nil, session.Options{})
	ctx := context.Background()

	s.SetViewport(ctx, session.Mobile)
	s.SetViewport(ctx, session.Desktop)
	s.SetViewport(ctx, session.Mobile)

	assert.Equal(t, session.Mobile, s.Viewport())
	assert.Empty(t, s.TestedViewports())
}

func TestTestedViewportsOnlyAccepted(t *testing.T) {
	ctx := context.Background()
	s := session.New(&sessiontest.Browser{}, nil, session.Options{})
	s.SetViewport(ctx, session.Mobile)
	s.SetViewport(ctx, session.Desktop)
	s.SetViewport(ctx, session.Mobile)
	assert.Equal(t, []session.Viewport{session.Mobile, session.Desktop}, s.TestedViewports())

	down := session.New(session.Unavailable(errors.New("no chrome")), nil, session.Options{})
	down.SetViewport(ctx, session.Desktop)
	down.SetViewport(ctx, session.Mobile)
	assert.Empty(t, down.TestedViewports())
	assert.Equal(t, session.Mobile, down.Viewport())
}

func TestProbesWithoutProber(t *testing.T) {
	s := session.New(&sessiontest.Browser{}, nil, session.Options{})
	res := s.Head(context.Background(), "https://example.org/")
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, session.ErrUnavailable)
}

func TestProbesDelegate(t *testing.T) {
	p := &sessiontest.Prober{Results: map[string]httpclient.Result{
		"https://example.org/404": {Status: 404},
	}}
	s := session.New(&sessiontest.Browser{}, p, session.Options{})
	ctx := context.Background()

	assert.Equal(t, 404, s.Head(ctx, "https://example.org/404").Status)
	assert.Equal(t, 200, s.Get(ctx, "https://example.org/ok").Status)
	assert.Equal(t, []string{"https://example.org/404"}, p.Heads)
	assert.Equal(t, []string{"https://example.org/ok"}, p.Gets)
}

func TestDocumentResolvesAgainstLocation(t *testing.T) {
	b := &sessiontest.Browser{
		URL:     "https://example.org/section/",
		HTMLDoc: `<html><body><a href="story">s</a><img src="/i.png"></body></html>`,
	}
	s := session.New(b, nil, session.Options{Target: "https://example.org/"})

	doc, err := s.Document(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Links, 1)
	assert.Equal(t, "https://example.org/section/story", doc.Links[0].Href)
	assert.Equal(t, "https://example.org/i.png", doc.Images[0].Src)

	_, err = session.New(sessiontest.Failing(), nil, session.Options{}).Document(context.Background())
	assert.Error(t, err)
}

func TestFillClearsThenTypes(t *testing.T) {
	b := &sessiontest.Browser{}
	s := session.New(b, nil, session.Options{})
	require.NoError(t, s.Fill(context.Background(), "input[type=search]", "test"))
	assert.Equal(t, "test", b.Typed["input[type=search]"])
}

func TestCloseOnce(t *testing.T) {
	b := &sessiontest.Browser{}
	s := session.New(b, nil, session.Options{})

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, b.Closed)

	var out any
	assert.False(t, s.Evaluate(context.Background(), "x", &out))
	err := s.Navigate(context.Background(), "https://example.org/")
	assert.True(t, errors.Is(err, session.ErrClosed))
	_, err = s.ConsoleLogs(context.Background())
	assert.ErrorIs(t, err, session.ErrClosed)
}

func TestBaselineLoad(t *testing.T) {
	s := session.New(&sessiontest.Browser{}, nil, session.Options{})
	_, ok := s.BaselineLoad()
	assert.False(t, ok)

	s.SetBaselineLoad(1500 * time.Millisecond)
	d, ok := s.BaselineLoad()
	assert.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, d)
}

func TestSettleHonoursContext(t *testing.T) {
	s := session.New(&sessiontest.Browser{}, nil, session.Options{SettleDelay: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	s.Settle(ctx)
	assert.Less(t, time.Since(start), time.Second)
}

func TestUnavailableBrowser(t *testing.T) {
	b := session.Unavailable(errors.New("chrome not found"))
	err := b.Navigate(context.Background(), "https://example.org/")
	assert.ErrorIs(t, err, session.ErrUnavailable)
	assert.Contains(t, err.Error(), "chrome not found")
	assert.NoError(t, b.Close())
}

func TestViewportText(t *testing.T) {
	var vp session.Viewport
	require.NoError(t, vp.UnmarshalText([]byte("390x844")))
	assert.Equal(t, session.Mobile, vp)
	assert.Equal(t, "1366x768", session.Desktop.String())

	assert.Error(t, vp.UnmarshalText([]byte("wide")))
	assert.Error(t, vp.UnmarshalText([]byte("0x10")))
}

func TestRectIntersects(t *testing.T) {
	a := session.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		name string
		b    session.Rect
		want bool
	}{
		{"overlap", session.Rect{X: 90, Y: 10, Width: 50, Height: 10}, true},
		{"touching edge", session.Rect{X: 100, Y: 0, Width: 10, Height: 10}, false},
		{"below", session.Rect{X: 0, Y: 60, Width: 10, Height: 10}, false},
		{"zero size", session.Rect{X: 10, Y: 10}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Intersects(tc.b))
			assert.Equal(t, tc.want, tc.b.Intersects(a))
		})
	}
}
