package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const jsonBody = `{"pasteId":"abc123","shortCode":"Xy12Zq"}`

type CompressTestSuite struct {
	suite.Suite
	router *chi.Mux
	ts     *httptest.Server
}

func (suite *CompressTestSuite) SetupTest() {
	suite.router = chi.NewRouter()
	suite.ts = httptest.NewServer(suite.router)
}

func (suite *CompressTestSuite) TearDownTest() {
	suite.ts.Close()
}

func TestCompressTestSuite(t *testing.T) {
	suite.Run(t, new(CompressTestSuite))
}

func echo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	b, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(b)
}

func gzipped(t *testing.T, payload string) []byte {
	var b bytes.Buffer
	gz := gzip.NewWriter(&b)
	_, err := gz.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return b.Bytes()
}

func (suite *CompressTestSuite) TestCompressHandle() {
	suite.router.Use(CompressHandle)
	suite.router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonBody))
	})

	tests := []struct {
		name              string
		expectedEncoding  string
		acceptedEncodings []string
	}{
		{
			name:              "no encoding",
			acceptedEncodings: nil,
			expectedEncoding:  "",
		},
		{
			name:              "gzip encoding",
			acceptedEncodings: []string{"gzip"},
			expectedEncoding:  "gzip",
		},
		{
			name:              "gzip among others",
			acceptedEncodings: []string{"br", "gzip"},
			expectedEncoding:  "gzip",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			client := resty.New()
			res, err := client.R().SetHeader("Accept-Encoding", strings.Join(tt.acceptedEncodings, ",")).Get(suite.ts.URL + "/get")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedEncoding, res.Header().Get("Content-Encoding"))
			assert.Equal(t, "Accept-Encoding", res.Header().Get("Vary"))
		})
	}
}

func (suite *CompressTestSuite) TestCompressHandle_Body() {
	suite.router.Use(CompressHandle)
	suite.router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonBody))
	})
	// repeated requests reuse pooled writers
	for i := 0; i < 3; i++ {
		req, err := http.NewRequest(http.MethodGet, suite.ts.URL+"/get", nil)
		suite.Require().NoError(err)
		req.Header.Set("Accept-Encoding", "gzip")
		res, err := http.DefaultTransport.RoundTrip(req)
		suite.Require().NoError(err)
		gz, err := gzip.NewReader(res.Body)
		suite.Require().NoError(err)
		body, err := io.ReadAll(gz)
		suite.Require().NoError(err)
		_ = res.Body.Close()
		suite.Equal(jsonBody, string(body))
	}
}

func (suite *CompressTestSuite) TestDecompressHandle() {
	suite.router.Use(DecompressHandle)
	suite.router.Post("/post", echo)

	tests := []struct {
		name          string
		queryEncoding string
		payload       string
	}{
		{
			name:          "no encoding",
			queryEncoding: "",
			payload:       `{"url":"https://example.com/p/abc123"}`,
		},
		{
			name:          "gzip encoding",
			queryEncoding: "gzip",
			payload:       `{"url":"https://example.com/p/def456"}`,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			client := resty.New()
			var payload []byte
			if tt.queryEncoding == "" {
				payload = []byte(tt.payload)
			} else {
				payload = gzipped(t, tt.payload)
			}
			res, err := client.R().SetHeader("Content-Encoding", tt.queryEncoding).SetBody(payload).Post(suite.ts.URL + "/post")
			require.NoError(t, err)
			assert.Equal(t, tt.payload, string(res.Body()))
		})
	}
}

func (suite *CompressTestSuite) TestDecompressHandle_Malformed() {
	suite.router.Use(DecompressHandle)
	suite.router.Post("/post", echo)
	res, err := resty.New().R().SetHeader("Content-Encoding", "gzip").SetBody([]byte("not gzip")).Post(suite.ts.URL + "/post")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())
}

// Benchmarks

func BenchmarkCompressHandle(b *testing.B) {
	router := chi.NewRouter()
	client := resty.New()
	ts := httptest.NewServer(router)
	defer ts.Close()
	router.Use(CompressHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonBody))
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.R().SetHeader("Accept-Encoding", "gzip").Get(ts.URL + "/get")
	}
}
