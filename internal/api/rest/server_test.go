package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/mocks"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/codegen"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/issuer/v1"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/resolver/v1"
)

func newConfig(subnet string) *config.Config {
	return &config.Config{
		ServerAddress:   ":0",
		ShortLinkDomain: "sho.rt",
		MainSiteURL:     "https://example.com",
		FallbackURL:     "https://example.com",
		StoreTimeout:    time.Second,
		TrustedSubnet:   subnet,
	}
}

// newServer builds the full router over a mock storage; unexpected store calls fail the test.
func newServer(t *testing.T, subnet string) (*httptest.Server, *mocks.MockShortLinkStorage) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	s := mocks.NewMockShortLinkStorage(ctrl)
	sink := mocks.NewMockClickSink(ctrl)
	cfg := newConfig(subnet)
	gen, err := codegen.NewRandom(6)
	require.NoError(t, err)
	iss, err := issuer.InitIssuer(s, gen, cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	res, err := resolver.InitResolver(s, sink, cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	r, err := NewRouter(cfg, iss, res, s, zap.NewNop(), metrics.New())
	require.NoError(t, err)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, s
}

func noRedirects() *resty.Client {
	client := resty.New()
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	return client
}

// Tests

func TestRouter_PreflightTouchesNoStore(t *testing.T) {
	ts, _ := newServer(t, "")
	for _, path := range []string{"/", "/Xy12Zq", "/api/shortlinks", "/metrics"} {
		res, err := noRedirects().R().Options(ts.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, res.StatusCode(), path)
		assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouter_RootFallsBackWithoutStore(t *testing.T) {
	ts, _ := newServer(t, "")
	res, err := noRedirects().R().Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, res.StatusCode())
	assert.Equal(t, "https://example.com", res.Header().Get("Location"))
}

func TestRouter_HeadRedirectsWithoutClick(t *testing.T) {
	ts, s := newServer(t, "")
	link := modellink.ShortLink{PasteID: "abc123", ShortCode: "Xy12Zq", CanonicalURL: "https://example.com/p/abc123"}
	s.EXPECT().FindByShortCode(gomock.Any(), "Xy12Zq").Return(link, nil)
	// the click sink mock has no expectations
	res, err := noRedirects().R().Head(ts.URL + "/Xy12Zq")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, res.StatusCode())
	assert.Equal(t, "/p/abc123", res.Header().Get("Location"))

	res, err = noRedirects().R().Head(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, res.StatusCode())
	assert.Equal(t, "https://example.com", res.Header().Get("Location"))
}

func TestRouter_MetricsTrustedOnly(t *testing.T) {
	ts, _ := newServer(t, "")
	res, err := noRedirects().R().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode())

	ts, _ = newServer(t, "127.0.0.0/8")
	res, err = noRedirects().R().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.True(t, strings.Contains(string(res.Body()), "shortlinks_code_collisions_total"))
}

func TestRouter_Ping(t *testing.T) {
	ts, s := newServer(t, "")
	s.EXPECT().PingDB().Return(nil)
	res, err := noRedirects().R().Get(ts.URL + "/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
}

func TestInitServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockShortLinkStorage(ctrl)
	cfg := newConfig("")
	cfg.EnableHTTPS = true
	gen, _ := codegen.NewRandom(6)
	iss, _ := issuer.InitIssuer(s, gen, cfg, zap.NewNop(), nil)
	res, _ := resolver.InitResolver(s, mocks.NewMockClickSink(ctrl), cfg, zap.NewNop(), nil)
	srv, err := InitServer(cfg, iss, res, s, zap.NewNop(), metrics.New())
	require.NoError(t, err)
	assert.Equal(t, ":0", srv.Addr)
	require.NotNil(t, srv.TLSConfig)
	assert.NotNil(t, srv.TLSConfig.GetCertificate)
}
