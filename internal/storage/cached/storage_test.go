package cached

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/mocks"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	storageErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/errors"
)

var link = modellink.ShortLink{
	PasteID:      "abc123",
	ShortCode:    "Xy12Zq",
	CanonicalURL: "https://example.com/p/abc123",
	ShortURL:     "https://sho.rt/Xy12Zq",
}

// unreachableClient points at a closed port and never retries.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

// hungServer accepts connections and never answers, like a Redis behind a dropping firewall.
func hungServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, conn)
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return ln.Addr().String()
}

// liveClient connects to REDIS_ADDRESS (localhost:6379 by default) or skips the test.
func liveClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available at %s: %v", addr, err)
	}
	client.Del(context.Background(), CodePrefix+link.ShortCode, PastePrefix+link.PasteID)
	return client
}

// Tests

func TestCacheFailureFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	inner := mocks.NewMockShortLinkStorage(ctrl)
	inner.EXPECT().FindByShortCode(gomock.Any(), "Xy12Zq").Return(link, nil)
	inner.EXPECT().FindByPasteID(gomock.Any(), "missing").Return(modellink.ShortLink{}, &storageErrors.NotFoundError{Key: "missing"})
	inner.EXPECT().IncrementClicks(gomock.Any(), "abc123").Return(nil)
	core, logs := observer.New(zapcore.WarnLevel)
	st := InitStorage(inner, unreachableClient(), time.Minute, zap.New(core))
	defer st.CloseDB()

	got, err := st.FindByShortCode(context.Background(), "Xy12Zq")
	require.NoError(t, err)
	assert.Equal(t, link, got)

	_, err = st.FindByPasteID(context.Background(), "missing")
	var notFound *storageErrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	assert.NoError(t, st.IncrementClicks(context.Background(), "abc123"))
	assert.NotZero(t, logs.FilterMessage("cache read failed").Len())
	assert.NotZero(t, logs.FilterMessage("cache write failed").Len())
}

func TestHungCacheLeavesDeadlineToInner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	inner := mocks.NewMockShortLinkStorage(ctrl)
	inner.EXPECT().FindByShortCode(gomock.Any(), "Xy12Zq").DoAndReturn(func(ctx context.Context, _ string) (modellink.ShortLink, error) {
		if err := ctx.Err(); err != nil {
			return modellink.ShortLink{}, &storageErrors.ContextTimeoutExceededError{Err: err}
		}
		return link, nil
	})
	st := InitStorage(inner, newClient(hungServer(t), ""), time.Minute, zap.NewNop())
	defer st.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	got, err := st.FindByShortCode(ctx, "Xy12Zq")
	require.NoError(t, err)
	assert.Equal(t, link, got)
}

func TestNewClientFailsOnHungServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewClient(ctx, hungServer(t), "")
	assert.Error(t, err)
}

func TestPingUsesInner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	inner := mocks.NewMockShortLinkStorage(ctrl)
	inner.EXPECT().PingDB().Return(nil)
	st := InitStorage(inner, unreachableClient(), time.Minute, zap.NewNop())
	defer st.CloseDB()
	assert.NoError(t, st.PingDB())
}

func TestCacheHit(t *testing.T) {
	client := liveClient(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	inner := mocks.NewMockShortLinkStorage(ctrl)
	// a single inner read, the rest is served from Redis
	inner.EXPECT().FindByShortCode(gomock.Any(), "Xy12Zq").Return(link, nil).Times(1)
	st := InitStorage(inner, client, time.Minute, zap.NewNop())
	defer st.CloseDB()

	for i := 0; i < 3; i++ {
		got, err := st.FindByShortCode(context.Background(), "Xy12Zq")
		require.NoError(t, err)
		assert.Equal(t, link.PasteID, got.PasteID)
	}
	// populated under both keys
	got, err := st.FindByPasteID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, link.ShortCode, got.ShortCode)
}

func TestInsertWritesThroughAndClickInvalidates(t *testing.T) {
	client := liveClient(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	inner := mocks.NewMockShortLinkStorage(ctrl)
	inner.EXPECT().Insert(gomock.Any(), link).Return(link, nil)
	inner.EXPECT().IncrementClicks(gomock.Any(), "abc123").Return(nil)
	counted := link
	counted.ClickCount = 1
	inner.EXPECT().FindByPasteID(gomock.Any(), "abc123").Return(counted, nil)
	st := InitStorage(inner, client, time.Minute, zap.NewNop())
	defer st.CloseDB()

	_, err := st.Insert(context.Background(), link)
	require.NoError(t, err)
	got, err := st.FindByShortCode(context.Background(), "Xy12Zq")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.PasteID)

	require.NoError(t, st.IncrementClicks(context.Background(), "abc123"))
	got, err = st.FindByPasteID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ClickCount)
}
