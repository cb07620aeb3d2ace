package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bowling/internal/game"
)

func TestHandlerExposesCollectors(t *testing.T) {
	GameStarted()
	Rolled(game.Strike)
	GameFinished(300)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "bowling_games_started_total")
	assert.Contains(t, body, "bowling_games_finished_total")
	assert.Contains(t, body, `bowling_rolls_total{kind="strike"}`)
	assert.Contains(t, body, `bowling_final_score_bucket{le="300"} 1`)
}
