package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
)

func newTrustedServer(t *testing.T, subnet string) *httptest.Server {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	trustedNetHandler := NewTrustedNetHandler(&config.Config{TrustedSubnet: subnet}, zap.NewNop())
	router.Use(trustedNetHandler.TrustedNetworkHandler)
	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("authorized"))
	})
	return ts
}

// Tests

func TestNewTrustedNetHandler_InvalidCIDR(t *testing.T) {
	for _, subnet := range []string{"", "10.0.0.0/33", "not a subnet"} {
		trustedNetHandler := NewTrustedNetHandler(&config.Config{TrustedSubnet: subnet}, zap.NewNop())
		assert.False(t, trustedNetHandler.Resolved, subnet)
		assert.Nil(t, trustedNetHandler.IPNet)
	}
}

func TestNewTrustedNetHandler(t *testing.T) {
	trustedNetHandler := NewTrustedNetHandler(&config.Config{TrustedSubnet: "127.135.1.0/24"}, zap.NewNop())
	mask := net.IPMask(net.ParseIP("255.255.255.0").To4())
	assert.True(t, trustedNetHandler.Resolved)
	assert.Equal(t, net.ParseIP("127.135.1.0").To16(), trustedNetHandler.IP)
	assert.Equal(t, &net.IPNet{IP: net.ParseIP("127.135.1.0").To4(), Mask: mask}, trustedNetHandler.IPNet)
}

func TestTrustedNetHandler_TrustedNetworkHandler(t *testing.T) {
	tests := []struct {
		name    string
		subnet  string
		headers map[string]string
		want    int
	}{
		{
			name:    "real ip inside subnet",
			subnet:  "127.135.1.0/24",
			headers: map[string]string{"X-Real-IP": "127.135.1.1"},
			want:    http.StatusOK,
		},
		{
			name:    "forwarded chain inside subnet",
			subnet:  "127.135.1.0/24",
			headers: map[string]string{"X-Forwarded-For": "127.135.1.1, 10.0.0.1"},
			want:    http.StatusOK,
		},
		{
			name:   "remote address inside subnet",
			subnet: "127.0.0.0/8",
			want:   http.StatusOK,
		},
		{
			name:   "outside subnet",
			subnet: "127.135.1.0/24",
			want:   http.StatusForbidden,
		},
		{
			name:    "no subnet configured",
			subnet:  "",
			headers: map[string]string{"X-Real-IP": "127.135.1.1"},
			want:    http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTrustedServer(t, tt.subnet)
			res, err := resty.New().R().SetHeaders(tt.headers).Get(ts.URL + "/metrics")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.StatusCode())
		})
	}
}
