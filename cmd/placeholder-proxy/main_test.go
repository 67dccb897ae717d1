package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Sternrassler/placeholder-proxy/internal/config"
	"github.com/Sternrassler/placeholder-proxy/pkg/cache"
	"github.com/Sternrassler/placeholder-proxy/pkg/perf"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	chdir(t, t.TempDir())
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	return cfg
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "placeholder-proxy "+Version+"\n", out)
}

func TestMetricsCommand_JSON(t *testing.T) {
	out := execute(t, "metrics", "--json")

	var got []perf.Metrics
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, len(perf.Frameworks))
	for i, fw := range perf.Frameworks {
		assert.Equal(t, fw, got[i].Framework)
	}
}

func TestMetricsCommand_SingleFramework(t *testing.T) {
	out := execute(t, "metrics", "--json", "--framework", "angular")

	var got []perf.Metrics
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, perf.Angular, got[0].Framework)
}

func TestPrintMetrics_Table(t *testing.T) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, printMetrics(cmd, perf.Frameworks, now, false))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.True(t, bytes.HasPrefix(lines[0], []byte("FRAMEWORK")))
	assert.True(t, bytes.HasPrefix(lines[1], []byte("nextjs")))
	assert.True(t, bytes.HasPrefix(lines[3], []byte("nuxt")))
}

func TestApp_StartStop(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Warmup.Schedule = ""

	var router *gin.Engine
	app := fxtest.New(t, append(appOptions(cfg), fx.Populate(&router))...)
	app.RequireStart()
	defer app.RequireStop()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","cache":"memory"}`, rec.Body.String())
}

func TestApp_StopTimeoutFromConfig(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Warmup.Schedule = ""
	cfg.Server.ShutdownTimeout = 3 * time.Second

	app := fxtest.New(t, appOptions(cfg)...)
	assert.Equal(t, 3*time.Second, app.StopTimeout())
}

func TestProvideLogger_RejectsUnknownLevel(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Log.Level = "verbose"

	_, err := provideLogger(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestProvideCacheStore(t *testing.T) {
	cfg := defaultConfig(t)
	lc := fxtest.NewLifecycle(t)

	store, err := provideCacheStore(lc, cfg, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "memory", store.Name())
	assert.IsType(t, &cache.MemoryStore{}, store)

	cfg.Cache.Backend = "memcached"
	_, err = provideCacheStore(lc, cfg, testLogger())
	assert.Error(t, err)
}

func TestProvideScheduler_InvalidSchedule(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Warmup.Schedule = "every tuesday"

	c, err := provideClient(cfg)
	require.NoError(t, err)
	api := provideAPI(c, provideCacheManager(cache.NewMemoryStore(), cfg))

	_, err = provideScheduler(fxtest.NewLifecycle(t), cfg, api, testLogger())
	assert.Error(t, err)
}

func TestProvideClient(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Upstream.MaxRetries = 5

	c, err := provideClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Config().MaxRetries)
	assert.Equal(t, cfg.Upstream.BaseURL, c.Config().BaseURL)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
