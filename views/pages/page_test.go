package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolioquest/internal/viewmodel"
	"portfolioquest/views/components"
)

func TestPageContainsEveryFragment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(viewmodel.Page{Title: "Portfolio Quest", SessionID: "abc"}).Render(context.Background(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	for _, id := range []string{components.HUDID, components.OverlayID, components.AnchorsID, components.QuickTravelID, components.PanelID, components.TelescopeID} {
		assert.Contains(t, out, `id="`+id+`"`)
	}
	assert.Contains(t, out, `data-session="abc"`)
	assert.Contains(t, out, "<title>Portfolio Quest</title>")
}
