package templates

import (
	"context"
	"testing"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/markup"
	"github.com/aretw0/vitrine/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"button", "card", "dashboard", "form", "gallery", "stack"}, Names())
	assert.Equal(t, "button", All()[0].Name)
	assert.Contains(t, Names(), Default)
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get("nope")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestTemplatesRenderWithWrap(t *testing.T) {
	p := pipeline.New(markup.NewParser())
	for _, tpl := range All() {
		t.Run(tpl.Name, func(t *testing.T) {
			body, err := Body(tpl.Name)
			require.NoError(t, err)
			require.NotEmpty(t, body)

			got := p.Run(context.Background(), body, true)
			assert.Equal(t, domain.KindRendered, got.Kind, "message: %s", got.Message)
		})
	}
}
