package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNoisePng(t *testing.T, path string, seed int64) {
	random := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = uint8(random.Intn(256))
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func writeSolidPng(t *testing.T, path string) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func newDataset(t *testing.T) string {
	dir := t.TempDir()
	writeNoisePng(t, filepath.Join(dir, "a.png"), 3)
	writeNoisePng(t, filepath.Join(dir, "b.png"), 3)
	writeSolidPng(t, filepath.Join(dir, "c.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("nope"), 0o644))
	return dir
}

func TestRun_PrintsPairs(t *testing.T) {
	a := assert.New(t)
	dir := newDataset(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	code := run(context.Background(), []string{"-p", dir, "-logLevel", "WARN"}, stdout, stderr)

	a.Equal(0, code)
	a.Equal(filepath.Join(dir, "a.png")+" "+filepath.Join(dir, "b.png")+"\n", stdout.String())
	a.Contains(stderr.String(), "broken.jpg")
}

func TestRun_Verbose(t *testing.T) {
	a := assert.New(t)
	dir := newDataset(t)
	stdout := &bytes.Buffer{}

	code := run(context.Background(), []string{"-path", dir, "-verbose", "-logLevel", "ERROR"}, stdout, &bytes.Buffer{})

	a.Equal(0, code)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	a.Equal([]string{
		filepath.Join(dir, "a.png") + ": " + filepath.Join(dir, "b.png") + " (0)",
		filepath.Join(dir, "b.png") + ": " + filepath.Join(dir, "a.png") + " (0)",
	}, lines)
}

func TestRun_MetricsAndExport(t *testing.T) {
	a := assert.New(t)
	dir := newDataset(t)
	output := t.TempDir()
	metricsFile := filepath.Join(output, "metrics.prom")
	dbFile := filepath.Join(output, "result.db")

	code := run(context.Background(), []string{"-path", dir, "-db", dbFile, "-metricsFile", metricsFile, "-logLevel", "ERROR"},
		&bytes.Buffer{}, &bytes.Buffer{})

	a.Equal(0, code)
	a.FileExists(dbFile)
	content, err := os.ReadFile(metricsFile)
	a.NoError(err)
	a.Contains(string(content), "similar_images_hashed_total")
}

func TestRun_EmptyFolder(t *testing.T) {
	a := assert.New(t)
	stdout := &bytes.Buffer{}

	code := run(context.Background(), []string{"-path", t.TempDir(), "-logLevel", "ERROR"}, stdout, &bytes.Buffer{})

	a.Equal(0, code)
	a.Equal("", stdout.String())
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing path", args: []string{}},
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "missing folder", args: []string{"-path", filepath.Join(os.TempDir(), "does-not-exist-similar-images")}},
		{name: "threshold too large", args: []string{"-path", ".", "-threshold", "65"}},
		{name: "unknown resampler", args: []string{"-path", ".", "-resampler", "nearest"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			code := run(context.Background(), tt.args, stdout, &bytes.Buffer{})
			assert.Equal(t, 1, code)
			assert.Equal(t, "", stdout.String())
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	a := assert.New(t)
	dir := newDataset(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := run(ctx, []string{"-path", dir, "-logLevel", "ERROR"}, &bytes.Buffer{}, &bytes.Buffer{})

	a.Equal(1, code)
}
