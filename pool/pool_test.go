package pool

import "testing"

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(8, 64)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 1, p.Blocks())
	assert.Equal(t, 8, p.FreeChunks())
	assert.Equal(t, 64, p.ChunkSize())
}

func TestNewRejectsBadSizes(t *testing.T) {
	_, err := New(0, 64)
	assert.Error(t, err)
	_, err = New(8, 4)
	assert.Error(t, err)
}

func TestAllocFree(t *testing.T) {
	p, err := New(4, 32)
	require.NoError(t, err)
	defer p.Close()

	c, err := p.Alloc()
	require.NoError(t, err)
	require.Len(t, c, 32)
	assert.Equal(t, 3, p.FreeChunks())

	for i := range c {
		c[i] = 0xab
	}
	require.NoError(t, p.Free(c))
	assert.Equal(t, 4, p.FreeChunks())

	// LIFO reuse: the freed chunk comes straight back
	c2, err := p.Alloc()
	require.NoError(t, err)
	assert.Same(t, &c[0], &c2[0])
}

func TestChunksAreDistinct(t *testing.T) {
	p, err := New(4, 32)
	require.NoError(t, err)
	defer p.Close()

	chunks := make([][]byte, 4)
	for i := range chunks {
		c, err := p.Alloc()
		require.NoError(t, err)
		for j := range c {
			c[j] = byte(i)
		}
		chunks[i] = c
	}
	for i, c := range chunks {
		for _, b := range c {
			require.Equal(t, byte(i), b)
		}
	}
}

func TestGrowth(t *testing.T) {
	p, err := New(2, 16)
	require.NoError(t, err)
	defer p.Close()

	for i := 0; i < 5; i++ {
		_, err := p.Alloc()
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.Blocks())
	assert.Equal(t, 1, p.FreeChunks())
}

func TestFreeForeignChunk(t *testing.T) {
	p, err := New(2, 16)
	require.NoError(t, err)
	defer p.Close()

	assert.Error(t, p.Free(make([]byte, 16)))
	assert.Error(t, p.Free(make([]byte, 8)))

	c, err := p.Alloc()
	require.NoError(t, err)
	assert.NoError(t, p.Free(c))
}

func TestFreeAllAllocAll(t *testing.T) {
	p, err := New(8, 16)
	require.NoError(t, err)
	defer p.Close()

	chunks := make([][]byte, 8)
	for i := range chunks {
		c, err := p.Alloc()
		require.NoError(t, err)
		chunks[i] = c
	}
	assert.Equal(t, 0, p.FreeChunks())
	for _, c := range chunks {
		require.NoError(t, p.Free(c))
	}
	assert.Equal(t, 8, p.FreeChunks())
	for range chunks {
		_, err := p.Alloc()
		require.NoError(t, err)
	}
	assert.Equal(t, 1, p.Blocks())
}

func TestClose(t *testing.T) {
	p, err := New(2, 16)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	_, err = p.Alloc()
	assert.Error(t, err)
	assert.Error(t, p.Close())
}
