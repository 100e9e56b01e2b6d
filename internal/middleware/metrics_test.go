package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiberprometheus registers on the default registry, so this is the only
// test that builds it.
func TestMetricsMiddleware_ExposesFeedMetrics(t *testing.T) {
	FeedMutations.WithLabelValues("create_post").Inc()

	app := fiber.New()
	app.Use(MetricsMiddleware(app, InitMetrics("minisocial-test")))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "minisocial_feed_mutations_total")
	assert.Contains(t, string(body), `service="minisocial-test"`)
}

func TestFeedNoops_CountsPerAction(t *testing.T) {
	before := testutil.ToFloat64(FeedNoops.WithLabelValues("like_post"))
	FeedNoops.WithLabelValues("like_post").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(FeedNoops.WithLabelValues("like_post")))
}
