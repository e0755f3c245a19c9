package main

import (
	"bytes"
	"errors"
	"image"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/allanzhao/rsteg/bitfield"
	"github.com/allanzhao/rsteg/bitplane"
	"github.com/allanzhao/rsteg/internal/mocks/mockbitplane"
	"github.com/allanzhao/rsteg/stego"
)

type result struct {
	code           int
	stdout, stderr string
}

func runApp(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := newApp(strings.NewReader(stdin), &out, &errOut).run(args)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeCover(t *testing.T, w, h int) string {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(w*h)))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, bitplane.Save(path, img))
	return path
}

func TestEncodeDecodeFiles(t *testing.T) {
	cover := writeCover(t, 256, 256)
	out := filepath.Join(t.TempDir(), "out.png")

	r := runApp(t, "", "encode", "-in", cover, "-out", out, "-m", "hello there", "-level", "high")
	require.Equal(t, exitOK, r.code, r.stderr)

	r = runApp(t, "", "decode", "-in", out)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "hello there\n", r.stdout)

	r = runApp(t, "", "decode", "-n", out)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "hello there", r.stdout)
}

func TestEncodeStdinZstdBMP(t *testing.T) {
	cover := writeCover(t, 256, 256)
	out := filepath.Join(t.TempDir(), "out.bmp")
	msg := strings.Repeat("all work and no play ", 400)

	r := runApp(t, msg, "encode", "-zstd", "-channel", "blue", "-bit", "1", cover, out)
	require.Equal(t, exitOK, r.code, r.stderr)

	r = runApp(t, "", "decode", "-zstd", "-n", "-channel", "blue", "-bit", "1", out)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, msg, r.stdout)

	// The red plane was left alone.
	r = runApp(t, "", "decode", out)
	assert.Equal(t, exitFail, r.code)
}

func TestInspectAndCapacity(t *testing.T) {
	cover := writeCover(t, 256, 256)
	out := filepath.Join(t.TempDir(), "out.png")
	require.Equal(t, exitOK, runApp(t, "", "encode", "-m", "x", cover, out).code)

	r := runApp(t, "", "inspect", out)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"detected":true`)
	assert.Contains(t, r.stdout, `"level":"medium"`)

	r = runApp(t, "", "capacity", "-level", "high", cover)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "2680\n", r.stdout)

	r = runApp(t, "", "capacity", cover)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, 4, strings.Count(r.stdout, "\n"))
	assert.Contains(t, r.stdout, "very_high  1336")
}

func TestUsageErrors(t *testing.T) {
	cover := writeCover(t, 32, 32)
	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"-log-format", "xml", "decode", cover},
		{"encode", "-m", "x"},
		{"encode", "-level", "extreme", cover, "out.png"},
		{"encode", "-channel", "purple", cover, "out.png"},
		{"encode", "-bit", "8", cover, "out.png"},
		{"decode", cover, "extra"},
		{"decode", "-nope", cover},
		{"capacity", "-h"},
	} {
		r := runApp(t, "", args...)
		assert.Equal(t, exitUsage, r.code, "%q", args)
	}
}

func TestFailures(t *testing.T) {
	cover := writeCover(t, 32, 32)
	dir := t.TempDir()

	r := runApp(t, "", "encode", "-m", "x", cover, filepath.Join(dir, "out.jpg"))
	assert.Equal(t, exitFail, r.code)
	assert.Contains(t, r.stderr, "unsupported image format")

	r = runApp(t, "", "encode", "-m", "too big", cover, filepath.Join(dir, "out.png"))
	assert.Equal(t, exitFail, r.code)
	assert.Contains(t, r.stderr, "too much data")

	r = runApp(t, "", "decode", cover)
	assert.Equal(t, exitFail, r.code)

	r = runApp(t, "", "-v", "-log-format", "json", "decode", filepath.Join(dir, "missing.png"))
	assert.Equal(t, exitFail, r.code)
	assert.Contains(t, r.stderr, `"level":"debug"`)
}

func TestEmbedExtractMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := mockbitplane.NewMockBackend(ctrl)

	var stored *bitfield.Bitfield
	b.EXPECT().Bitplane(bitplane.Green, 2).Return(bitfield.New(256, 256), nil)
	b.EXPECT().SetBitplane(bitplane.Green, 2, gomock.Any()).DoAndReturn(
		func(_ bitplane.Channel, _ int, bf *bitfield.Bitfield) error {
			stored = bf
			return nil
		})
	require.NoError(t, embed(b, bitplane.Green, 2, []byte("mocked"), stego.Options{Level: stego.LevelLow}))
	require.NotNil(t, stored)

	b.EXPECT().Bitplane(bitplane.Green, 2).Return(stored, nil)
	got, err := extract(b, bitplane.Green, 2, stego.Options{})
	require.NoError(t, err)
	assert.Equal(t, "mocked", string(got))
}

func TestEmbedBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := mockbitplane.NewMockBackend(ctrl)
	boom := errors.New("boom")
	b.EXPECT().Bitplane(bitplane.Red, 0).Return(nil, boom)
	assert.ErrorIs(t, embed(b, bitplane.Red, 0, []byte("x"), stego.Options{}), boom)

	// Nothing is written back when the payload does not fit.
	b.EXPECT().Bitplane(bitplane.Red, 0).Return(bitfield.New(16, 16), nil)
	assert.ErrorIs(t, embed(b, bitplane.Red, 0, []byte("x"), stego.Options{}), stego.ErrCapacity)
}

func TestAppWithMockBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := mockbitplane.NewMockBackend(ctrl)
	b.EXPECT().Bounds().Return(image.Rect(0, 0, 512, 256))

	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(""), &out, &errOut)
	a.load = func(path string) (bitplane.Backend, error) {
		assert.Equal(t, "virtual.png", path)
		return b, nil
	}
	require.Equal(t, exitOK, a.run([]string{"capacity", "-level", "low", "virtual.png"}), errOut.String())
	assert.Equal(t, "9400\n", out.String())
}
