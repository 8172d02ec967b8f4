package export

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/honei/prospect-cli/internal/insight"
	"github.com/honei/prospect-cli/pkg/notion"
)

func TestBuildLeadProperties(t *testing.T) {
	profiles := sampleProfiles()
	props := buildLeadProperties(&profiles[0])

	tp, ok := props["Name"].(notionapi.TitleProperty)
	require.True(t, ok)
	assert.Equal(t, "Bar Manolo", tp.Title[0].Text.Content)

	np, ok := props["Fit Score"].(notionapi.NumberProperty)
	require.True(t, ok)
	assert.Equal(t, 72.0, np.Number)

	sp, ok := props["Estado"].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "Nuevo", sp.Select.Name)

	cp, ok := props["Contacto"].(notionapi.RichTextProperty)
	require.True(t, ok)
	assert.Equal(t, "Ana Pérez (Gerente)", cp.RichText[0].Text.Content)

	ap, ok := props["Ángulo"].(notionapi.RichTextProperty)
	require.True(t, ok)
	assert.Equal(t, insight.AngleSpeed, ap.RichText[0].Text.Content)

	up, ok := props["URL"].(notionapi.URLProperty)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/manolo", up.URL)
}

func TestBuildLeadProperties_EmptyFieldsSkipped(t *testing.T) {
	profiles := sampleProfiles()
	p := profiles[0]
	p.Notes = ""
	p.GoogleSearchSources = nil

	props := buildLeadProperties(&p)

	_, hasNotes := props["Notas"]
	_, hasURL := props["URL"]
	assert.False(t, hasNotes, "empty Notas should be skipped")
	assert.False(t, hasURL, "profile without sources should have no URL")
}

func TestNotionPusher_Push(t *testing.T) {
	mc := new(notion.MockClient)
	ctx := context.Background()

	var captured *notionapi.PageCreateRequest
	mc.On("CreatePage", ctx, mock.AnythingOfType("*notionapi.PageCreateRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*notionapi.PageCreateRequest)
		}).
		Return(&notionapi.Page{ID: "new"}, nil).Once()

	pusher := NewNotionPusher(mc, "db-1")
	count, err := pusher.Push(ctx, sampleProfiles())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, notionapi.DatabaseID("db-1"), captured.Parent.DatabaseID)
	mc.AssertExpectations(t)
}

func TestNotionPusher_Push_StopsOnError(t *testing.T) {
	mc := new(notion.MockClient)
	ctx := context.Background()

	profiles := append(sampleProfiles(), sampleProfiles()...)
	profiles[1].BusinessName = "Café Sol"

	mc.On("CreatePage", ctx, mock.AnythingOfType("*notionapi.PageCreateRequest")).
		Return(&notionapi.Page{ID: "p1"}, nil).Once()
	mc.On("CreatePage", ctx, mock.AnythingOfType("*notionapi.PageCreateRequest")).
		Return(nil, eris.New("rate limited")).Once()

	pusher := NewNotionPusher(mc, "db-1")
	count, err := pusher.Push(ctx, profiles)
	require.Error(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, err.Error(), "Café Sol")
	mc.AssertExpectations(t)
}
