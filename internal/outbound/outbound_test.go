package outbound

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justtldr/cli/internal/aiservice"
)

type FakeClipboard struct {
	Text    string
	Err     error
	Written bool
}

func (f *FakeClipboard) WriteAll(text string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Text, f.Written = text, true
	return nil
}

type FakeOpener struct {
	URLs []string
	Err  error
}

func (f *FakeOpener) OpenURL(url string) error {
	if f.Err != nil {
		return f.Err
	}
	f.URLs = append(f.URLs, url)
	return nil
}

func claude(t *testing.T) aiservice.Service {
	t.Helper()
	svc, err := aiservice.Get(aiservice.Claude)
	require.NoError(t, err)
	return svc
}

func newTestPending(t *testing.T) *Pending {
	t.Helper()
	return NewPending(filepath.Join(t.TempDir(), PendingFileName))
}

func TestDispatch(t *testing.T) {
	clip, opener := &FakeClipboard{}, &FakeOpener{}
	d := &Dispatcher{Clipboard: clip, Opener: opener, Pending: newTestPending(t)}

	res, err := d.Dispatch(context.Background(), "résumé text", claude(t))
	require.NoError(t, err)

	assert.Equal(t, "résumé text", clip.Text)
	assert.Equal(t, []string{"https://claude.ai/new?justTLDR"}, opener.URLs)
	assert.Equal(t, Result{
		Service: aiservice.Claude,
		URL:     "https://claude.ai/new?justTLDR",
		Length:  11,
		Copied:  true,
		Opened:  true,
	}, res)

	text, ok, err := d.Pending.Take()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "résumé text", text)
}

func TestDispatchDryRun(t *testing.T) {
	clip, opener := &FakeClipboard{}, &FakeOpener{}
	pending := newTestPending(t)
	d := &Dispatcher{Clipboard: clip, Opener: opener, Pending: pending, DryRun: true}

	res, err := d.Dispatch(context.Background(), "hello", claude(t))
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.False(t, res.Copied)
	assert.False(t, res.Opened)
	assert.False(t, clip.Written)
	assert.Empty(t, opener.URLs)
	_, ok, err := pending.Take()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoFileExists(t, pending.Path())
}

func TestDispatchErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("clipboard", func(t *testing.T) {
		opener := &FakeOpener{}
		d := &Dispatcher{Clipboard: &FakeClipboard{Err: boom}, Opener: opener}
		_, err := d.Dispatch(context.Background(), "x", claude(t))
		require.ErrorIs(t, err, boom)
		assert.Empty(t, opener.URLs)
	})

	t.Run("opener", func(t *testing.T) {
		d := &Dispatcher{Clipboard: &FakeClipboard{}, Opener: &FakeOpener{Err: boom}}
		res, err := d.Dispatch(context.Background(), "x", claude(t))
		require.ErrorIs(t, err, boom)
		assert.True(t, res.Copied)
		assert.False(t, res.Opened)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		clip := &FakeClipboard{}
		d := &Dispatcher{Clipboard: clip, Opener: &FakeOpener{}}
		_, err := d.Dispatch(ctx, "x", claude(t))
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, clip.Written)
	})
}
