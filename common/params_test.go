package common

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vincit.fi/similar-images/api/apitype"
)

func TestParseParams_Defaults(t *testing.T) {
	a := require.New(t)

	params, err := ParseParams("similar-images", []string{"-path", "images"}, io.Discard)
	a.Nil(err)

	a.Equal("images", params.RootPath())
	a.Equal(20, params.Threshold())
	a.Equal(apitype.DefaultHashConfig(), params.HashConfig())
	a.Equal(runtime.NumCPU(), params.ThreadCount())
	a.Equal("lanczos", params.Resampler())
	a.Equal("INFO", params.LogLevel())
	a.False(params.ExifRotate())
	a.False(params.Verbose())
	a.Equal("", params.DbFile())
	a.Equal("", params.MetricsFile())
	a.Nil(params.Validate())
}

func TestParseParams_ShortPathAndPositional(t *testing.T) {
	a := assert.New(t)

	params, err := ParseParams("similar-images", []string{"-p", "short"}, io.Discard)
	a.Nil(err)
	a.Equal("short", params.RootPath())

	params, err = ParseParams("similar-images", []string{"-threshold", "5", "positional"}, io.Discard)
	a.Nil(err)
	a.Equal("positional", params.RootPath())
	a.Equal(5, params.Threshold())
}

func TestParseParams_EnvironmentAndFlags(t *testing.T) {
	a := require.New(t)

	t.Setenv("SIMILAR_IMAGES_PATH", "from-env")
	t.Setenv("SIMILAR_IMAGES_THRESHOLD", "12")
	t.Setenv("SIMILAR_IMAGES_HASH_SIZE", "16")
	t.Setenv("SIMILAR_IMAGES_THREADS", "3")
	t.Setenv("SIMILAR_IMAGES_VERBOSE", "true")

	params, err := ParseParams("similar-images", []string{"-threshold", "30", "-db", "out.db"}, io.Discard)
	a.Nil(err)

	a.Equal("from-env", params.RootPath())
	a.Equal(30, params.Threshold())
	a.Equal(16, params.HashConfig().HashSize)
	a.Equal(3, params.ThreadCount())
	a.True(params.Verbose())
	a.Equal("out.db", params.DbFile())
}

func TestParseParams_InvalidEnvironment(t *testing.T) {
	a := assert.New(t)

	t.Setenv("SIMILAR_IMAGES_THRESHOLD", "many")

	_, err := ParseParams("similar-images", []string{}, io.Discard)
	a.NotNil(err)
}

func TestParseParams_UnknownFlag(t *testing.T) {
	a := assert.New(t)

	_, err := ParseParams("similar-images", []string{"-nope"}, io.Discard)
	a.NotNil(err)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(params *Params)
		want   error
	}{
		{name: "missing path", modify: func(p *Params) { p.rootPath = "" }, want: ErrMissingPath},
		{name: "negative threshold", modify: func(p *Params) { p.threshold = -1 }, want: ErrInvalidThreshold},
		{name: "threshold over bits", modify: func(p *Params) { p.threshold = 65 }, want: ErrInvalidThreshold},
		{name: "negative threads", modify: func(p *Params) { p.threads = -2 }, want: ErrInvalidThreads},
		{name: "bad log level", modify: func(p *Params) { p.logLevel = "loud" }, want: ErrInvalidLogLevel},
		{name: "hash larger than image", modify: func(p *Params) { p.hashSize = 64 }, want: apitype.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewEmptyParams()
			params.rootPath = "images"
			tt.modify(params)

			assert.ErrorIs(t, params.Validate(), tt.want)
		})
	}

	t.Run("threshold at bit count is valid", func(t *testing.T) {
		params := NewEmptyParams()
		params.rootPath = "images"
		params.threshold = 64
		assert.Nil(t, params.Validate())
	})
}

func TestLoadEnvFile(t *testing.T) {
	a := require.New(t)

	t.Run("Missing file is ignored", func(t *testing.T) {
		a.Nil(LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("Values become defaults", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), ".env")
		a.Nil(os.WriteFile(file, []byte("SIMILAR_IMAGES_IMAGE_SIZE=64\n"), 0644))
		t.Cleanup(func() { _ = os.Unsetenv("SIMILAR_IMAGES_IMAGE_SIZE") })

		a.Nil(LoadEnvFile(file))

		params, err := ParseParams("similar-images", []string{"images"}, io.Discard)
		a.Nil(err)
		a.Equal(64, params.HashConfig().ImageSize)
	})
}
