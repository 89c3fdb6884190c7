package preview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct{}

func (node) Outline() string { return "- node" }

func TestController_StartsEmpty(t *testing.T) {
	c := NewController()
	assert.True(t, c.Current().IsEmpty())
	assert.Equal(t, "", c.Status())
}

func TestController_FailureClearsRenderedContent(t *testing.T) {
	rec := NewRecorder()
	c := NewController(WithDisplays(rec))
	ctx := context.Background()

	c.Apply(ctx, domain.Rendered(node{}, "Button"))
	assert.Equal(t, "Rendered: Button", c.Status())

	c.Apply(ctx, domain.Failed("XML syntax error on line 5: unexpected EOF"))
	cur := c.Current()
	assert.Equal(t, domain.KindFailed, cur.Kind)
	assert.Nil(t, cur.Node, "no stale rendered node next to an error")
	assert.Equal(t, "Error", c.Status())

	require.Equal(t, 2, rec.Len())
	assert.Nil(t, rec.Last().Node)
}

func TestController_NormalizesMixedResults(t *testing.T) {
	c := NewController()
	c.Apply(context.Background(), domain.Result{
		Kind:     domain.KindFailed,
		Node:     node{},
		TypeName: "Button",
		Message:  "boom",
	})
	assert.Equal(t, domain.Failed("boom"), c.Current())

	c.Apply(context.Background(), domain.Result{Kind: domain.KindNonVisual, TypeName: "Style", Message: "old"})
	assert.Equal(t, domain.NonVisual("Style"), c.Current())

	c.Apply(context.Background(), domain.Result{Message: "left over"})
	assert.Equal(t, domain.Empty(), c.Current())
}

func TestController_Clear(t *testing.T) {
	rec := NewRecorder()
	c := NewController(WithDisplays(rec))
	ctx := context.Background()

	c.Apply(ctx, domain.NonVisual("SolidColorBrush"))
	c.Clear(ctx)
	assert.True(t, c.Current().IsEmpty())
	assert.Equal(t, []domain.Result{domain.NonVisual("SolidColorBrush"), domain.Empty()}, rec.History())
}

func TestController_AttachShowsCurrent(t *testing.T) {
	c := NewController()
	ctx := context.Background()
	c.Apply(ctx, domain.Failed("bad"))

	rec := NewRecorder()
	c.Attach(ctx, rec)
	assert.Equal(t, domain.Failed("bad"), rec.Last())
}

func TestController_DisplayErrorDoesNotStopOthers(t *testing.T) {
	rec := NewRecorder()
	broken := ports.DisplayFunc(func(context.Context, domain.Result) error {
		return errors.New("surface gone")
	})
	c := NewController(WithDisplays(broken, rec))
	c.Apply(context.Background(), domain.Rendered(node{}, "Grid"))
	assert.Equal(t, 1, rec.Len())
}

func TestRecorder_Contract(t *testing.T) {
	rec := NewRecorder()
	ports.RunDisplayContract(t, rec, rec.Last)
}

func TestBroadcaster_Contract(t *testing.T) {
	b := NewBroadcaster()
	ports.RunDisplayContract(t, b, b.Latest)
}

func TestBroadcaster_Subscribe(t *testing.T) {
	b := NewBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())

	ch := b.Subscribe(ctx)
	assert.Equal(t, 1, b.Subscribers())
	assert.True(t, (<-ch).IsEmpty(), "subscribers first receive the latest result")

	_ = b.Show(ctx, domain.Rendered(node{}, "Button"))
	_ = b.Show(ctx, domain.Failed("boom"))
	assert.Equal(t, domain.Failed("boom"), <-ch, "slow readers only see the latest")

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, b.Subscribers())
}

func TestNewView(t *testing.T) {
	n := outlineNode("- **Button**")

	v := NewView(domain.Rendered(n, "Button"))
	assert.Equal(t, domain.KindRendered, v.Kind)
	assert.Equal(t, "Rendered: Button", v.Status)
	assert.Equal(t, "- **Button**", v.Outline)
	assert.Equal(t, n, v.Node)

	v = NewView(domain.NonVisual("Style"))
	assert.Equal(t, "Parsed: Style (non-visual)", v.Status)
	assert.Contains(t, v.Fallback, "Parsed object of type: Style")
	assert.Nil(t, v.Node)

	v = NewView(domain.Result{})
	assert.Equal(t, domain.KindEmpty, v.Kind)
	assert.Empty(t, v.Status)
}

type outlineNode string

func (o outlineNode) Outline() string { return string(o) }
