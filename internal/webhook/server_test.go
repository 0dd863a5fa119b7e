package webhook

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/settings"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Repository) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	resolver := settings.NewResolver(repo, settings.Defaults{TimezoneOffsetHours: 0, LossMultiplier: 1})
	return NewServer(":0", repo, resolver), repo
}

func post(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestWebhookRecordsEmbedPayload(t *testing.T) {
	s, repo := newTestServer(t)
	require.NoError(t, repo.UpsertGuildSettings(&storage.GuildSettings{
		GuildID: "g1", NotificationChannelID: "c1",
	}))

	body := `{
		"channel_id": "c1",
		"embeds": [{
			"title": "New Hatch!",
			"fields": [
				{"name": "Hatched From", "value": "Legendary Egg"},
				{"name": "Weight", "value": "7.25 kg"}
			]
		}]
	}`

	rec := post(s, body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "delivery_id")

	cutoff := time.Now().UTC().Add(-time.Minute)
	count, err := repo.CountSubjectSince("g1", "Legendary", cutoff)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	tiers, err := repo.CountByTierSince("g1", cutoff)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"semi_titan": 1}, tiers)
}

func TestWebhookDefaultsOnEmptyPayload(t *testing.T) {
	s, repo := newTestServer(t)

	rec := post(s, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// No guild can be attributed and nothing was extractable, but the
	// event is still recorded
	count, err := repo.CountSubjectSince(storage.UnknownGuildID, "Unknown", time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestWebhookSoleGuildFallback(t *testing.T) {
	s, repo := newTestServer(t)
	require.NoError(t, repo.UpsertGuildSettings(&storage.GuildSettings{
		GuildID: "g1", NotificationChannelID: "c1",
	}))

	rec := post(s, `{"channel_id": "unconfigured", "content": "Hatched From: Rare Egg"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	count, err := repo.CountSubjectSince("g1", "Rare", time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestWebhookUnrecognizedShapeDegrades(t *testing.T) {
	s, repo := newTestServer(t)

	// Valid JSON that does not match either known document shape is an
	// extraction miss, not an error
	for _, body := range []string{`{"content": 123}`, `[1,2,3]`, `"just a string"`, `{"embeds": "nope"}`} {
		rec := post(s, body)
		require.Equal(t, http.StatusOK, rec.Code, "body %s", body)
	}

	count, err := repo.CountSubjectSince(storage.UnknownGuildID, "Unknown", time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestWebhookMalformedJSON(t *testing.T) {
	s, repo := newTestServer(t)

	rec := post(s, `{not json`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	total, err := repo.CountEventsSince(storage.UnknownGuildID, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, 0, total)
}

func TestWebhookBodyLimit(t *testing.T) {
	s, _ := newTestServer(t)

	huge := `{"content": "` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := post(s, huge)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
