package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlayout/internal/domain"
)

func readUntil(t *testing.T, r *bufio.Reader, prefix string) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
}

func TestHubStreamsFrames(t *testing.T) {
	h := New("test")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readUntil(t, reader, ": connected")
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Render(&domain.Frame{Tick: 7, Alpha: 0.5})

	assert.Equal(t, "frame", readUntil(t, reader, "event: "))
	data := readUntil(t, reader, "data: ")
	assert.Contains(t, data, `"tick":7`)
	assert.Contains(t, data, `"alpha":0.5`)
}

func TestHubPublishNamedEvent(t *testing.T) {
	h := New("test")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readUntil(t, reader, ": connected")
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Publish("layout_converged", map[string]int{"ticks": 300})

	assert.Equal(t, "layout_converged", readUntil(t, reader, "event: "))
	assert.Equal(t, `{"ticks":300}`, readUntil(t, reader, "data: "))
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	h := New("test")
	done := make(chan struct{})
	go func() {
		h.Run(context.Background())
		close(done)
	}()

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readUntil(t, reader, ": connected")
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Close()
	h.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Equal(t, 0, h.ClientCount())

	late, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer late.Body.Close()
	assert.Equal(t, http.StatusGone, late.StatusCode)
}
