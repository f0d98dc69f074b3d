package codegen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
)

// Tests

func TestRandom_Generate(t *testing.T) {
	gen, err := NewRandom(6)
	require.NoError(t, err)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.True(t, IsValid(code), code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 990)
}

func TestRandom_Concurrent(t *testing.T) {
	gen, err := NewRandom(8)
	require.NoError(t, err)
	var wg sync.WaitGroup
	codes := make(chan string, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, _ := gen.Generate()
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		assert.Len(t, code, 8)
	}
}

func TestHashID_Generate(t *testing.T) {
	gen, err := NewHashID("some salt", 6)
	require.NoError(t, err)
	code, err := gen.Generate()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(code), 6)
	assert.True(t, IsValid(code), code)
}

func TestNew(t *testing.T) {
	gen, err := New(config.StrategyRandom, 6, "")
	require.NoError(t, err)
	assert.IsType(t, &Random{}, gen)

	gen, err = New(config.StrategyHashIDs, 6, "salt")
	require.NoError(t, err)
	assert.IsType(t, &HashID{}, gen)

	_, err = New("sequential", 6, "")
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"Xy12Zq", true},
		{"a", true},
		{"", false},
		{"abc-12", false},
		{"abc 12", false},
		{"ключ", false},
		{string(make([]byte, MaxCodeLength+1)), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValid(tt.code), tt.code)
	}
}

// Benchmarks

func BenchmarkRandom_Generate(b *testing.B) {
	gen, _ := NewRandom(6)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = gen.Generate()
	}
}
