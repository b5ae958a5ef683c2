package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	lib, err := Load("")
	require.NoError(t, err)

	for _, id := range []string{"library", "go", "deploy-platform", BeaconID, LedgerID, "grafana", ProfileID} {
		assert.True(t, lib.Has(id), "missing %s", id)
	}
	assert.Equal(t, "Alex Morgan", lib.Profile().Name)
}

func TestLookupKinds(t *testing.T) {
	lib, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		id    string
		kind  Kind
		title string
	}{
		{"forge", KindArea, "The Forge"},
		{"kubernetes", KindSkill, "Kubernetes"},
		{"deploy-platform", KindProject, "Deploy Platform"},
		{BeaconID, KindBeacon, "The Beacon"},
		{LedgerID, KindLedger, "The Ledger"},
		{"sumo", KindTool, "Sumo Logic"},
		{ProfileID, KindProfile, "Alex Morgan"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			item, err := lib.Lookup(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, item.Kind)
			assert.Equal(t, tt.title, item.Title())
		})
	}
}

func TestLookupMissing(t *testing.T) {
	lib, err := Load("")
	require.NoError(t, err)

	_, err = lib.Lookup("cobol")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, lib.Has("cobol"))

	var nilLib *Library
	_, err = nilLib.Lookup("go")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAreaWinsOverSkillWithSameID(t *testing.T) {
	lib := New(Document{
		Areas: []Area{{
			ID:    "go",
			Name:  "Go Corner",
			Items: []SkillItem{{ID: "go", Title: "Go"}},
		}},
	})

	item, err := lib.Lookup("go")
	require.NoError(t, err)
	assert.Equal(t, KindArea, item.Kind)
}

func TestToolOnlyResolvesTools(t *testing.T) {
	lib, err := Load("")
	require.NoError(t, err)

	tool, ok := lib.Tool("prometheus")
	require.True(t, ok)
	assert.Equal(t, "Operated", tool.Verb)

	_, ok = lib.Tool("go")
	assert.False(t, ok)
}

func TestNoObservatory(t *testing.T) {
	lib, err := Decode(strings.NewReader(`{"profile":{"name":"Sam"}}`))
	require.NoError(t, err)

	assert.False(t, lib.Has(BeaconID))
	assert.False(t, lib.Has(LedgerID))
	assert.True(t, lib.Has(ProfileID))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"areas": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")

	_, err = Load("/nonexistent/cv.json")
	assert.Error(t, err)
}
