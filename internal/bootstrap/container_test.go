package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"study-assistant-be/internal/config"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiConfig(baseURL string, candidates ...string) *config.Config {
	return &config.Config{
		Keys: config.APIKeys{GoogleGemini: "test-key"},
		Ai: config.AIConfig{
			LLMProvider:     "gemini",
			ModelCandidates: candidates,
			GeminiBaseURL:   baseURL,
			ProbePrompt:     "Hello",
		},
	}
}

func TestSelectModelSkipsFailingCandidates(t *testing.T) {
	var mu sync.Mutex
	var probed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		probed = append(probed, r.URL.Path)
		mu.Unlock()
		if strings.Contains(r.URL.Path, "gemini-2.5-flash") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"code":404,"message":"model not found","status":"NOT_FOUND"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Hi!"}],"role":"model"}}]}`)
	}))
	defer srv.Close()

	handle := selectModel(context.Background(), geminiConfig(srv.URL, "gemini-2.5-flash", "gemini-2.5-pro", "gemini-2.0-pro"), logger.NewNopLogger())

	require.NotNil(t, handle)
	assert.Equal(t, "gemini-2.5-pro", handle.Model)
	assert.Len(t, probed, 2)
}

func TestSelectModelAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Nil(t, selectModel(context.Background(), geminiConfig(srv.URL, "a", "b"), logger.NewNopLogger()))
}

func TestSelectModelWithoutKey(t *testing.T) {
	cfg := geminiConfig("http://127.0.0.1:1", "gemini-2.5-flash")
	cfg.Keys.GoogleGemini = ""

	assert.Nil(t, selectModel(context.Background(), cfg, logger.NewNopLogger()))
}

func TestNewSearchCacheDrivers(t *testing.T) {
	log := logger.NewNopLogger()
	base := config.SearchConfig{CacheTTL: time.Minute}

	none := base
	none.CacheDriver = "none"
	assert.IsType(t, cache.Nop{}, newSearchCache(none, nil, log))

	mem := base
	mem.CacheDriver = "memory"
	assert.IsType(t, &cache.MemoryCache{}, newSearchCache(mem, nil, log))

	redisWithoutConn := base
	redisWithoutConn.CacheDriver = "redis"
	assert.IsType(t, &cache.MemoryCache{}, newSearchCache(redisWithoutConn, nil, log))
}

func TestConnectRedisEmptyURL(t *testing.T) {
	assert.Nil(t, connectRedis(context.Background(), "", logger.NewNopLogger()))
}

func TestBuildStartsAndCloses(t *testing.T) {
	cfg := &config.Config{
		Search: config.SearchConfig{CacheTTL: time.Minute},
		Media:  config.MediaConfig{Dir: t.TempDir() + "/music"},
	}
	c := Build(cfg, Deps{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Start(ctx))

	assert.NotNil(t, c.HomeController)
	assert.NotNil(t, c.ActivityHandler)
	assert.Equal(t, 0, c.WebSocketHub.ClientCount())
	c.Close()
}
