package outbound

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingTakeClears(t *testing.T) {
	p := newTestPending(t)

	_, ok, err := p.Take()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Store("first"))
	require.NoError(t, p.Store("second"))
	assert.FileExists(t, p.Path())

	text, ok, err := p.Take()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", text)
	assert.NoFileExists(t, p.Path())

	_, ok, err = p.Take()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPendingSurvivesAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", PendingFileName)

	require.NoError(t, NewPending(path).Store("from an earlier run"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from an earlier run", string(raw))

	text, ok, err := NewPending(path).Take()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from an earlier run", text)

	_, ok, err = NewPending(path).Take()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPendingEmptyText(t *testing.T) {
	p := newTestPending(t)
	require.NoError(t, p.Store(""))

	text, ok, err := p.Take()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, text)
}

func TestPendingConcurrentTake(t *testing.T) {
	p := newTestPending(t)
	require.NoError(t, p.Store("only once"))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		taken int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := p.Take()
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, taken)
}
