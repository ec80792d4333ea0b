package pool

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

import (
	mmap "github.com/edsrzf/mmap-go"
)

import (
	"github.com/mwehr/binfile/errors"
)

// none terminates the free list.
const none = ^uint64(0)

// Pool hands out fixed size chunks carved from anonymous memory
// mappings, so chunk memory never lands on the Go heap. Freed chunks
// are threaded into a free list through their first 8 bytes and reused
// in LIFO order. A Pool is not safe for concurrent use.
type Pool struct {
	chunkSize      int
	chunksPerBlock int
	blocks         []mmap.MMap
	freeHead       uint64
	freeLen        int
	closed         bool
}

// New creates a pool with one block already mapped. The chunk size
// must be at least 8 bytes so the free list link fits inside a free
// chunk.
func New(chunksPerBlock, chunkSize int) (*Pool, error) {
	if chunksPerBlock <= 0 {
		return nil, errors.Errorf("chunks per block must be positive, got %v", chunksPerBlock)
	}
	if chunkSize < 8 {
		return nil, errors.Errorf("chunk size must be at least 8 bytes, got %v", chunkSize)
	}
	self := &Pool{
		chunkSize:      chunkSize,
		chunksPerBlock: chunksPerBlock,
		freeHead:       none,
	}
	if err := self.grow(); err != nil {
		return nil, err
	}
	return self, nil
}

// Alloc pops a chunk off the free list, mapping another block when
// none are free. The returned chunk's contents are undefined.
func (self *Pool) Alloc() ([]byte, error) {
	if self.closed {
		return nil, errors.Errorf("pool is closed")
	}
	if self.freeHead == none {
		if err := self.grow(); err != nil {
			return nil, err
		}
	}
	chunk := self.chunk(self.freeHead)
	self.freeHead = binary.LittleEndian.Uint64(chunk)
	self.freeLen--
	return chunk, nil
}

// Free returns a chunk to the pool. The chunk must be one previously
// handed out by Alloc on this pool; anything else is rejected.
func (self *Pool) Free(chunk []byte) error {
	if self.closed {
		return errors.Errorf("pool is closed")
	}
	ref, err := self.ref(chunk)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(chunk, self.freeHead)
	self.freeHead = ref
	self.freeLen++
	return nil
}

// Close unmaps every block. All outstanding chunks become invalid;
// touching one afterwards is a caller bug the runtime will not catch.
func (self *Pool) Close() error {
	if self.closed {
		return errors.Errorf("pool is closed")
	}
	self.closed = true
	for _, b := range self.blocks {
		if err := b.Unmap(); err != nil {
			return errors.Wrapf(err, "could not unmap pool block")
		}
	}
	self.blocks = nil
	self.freeHead = none
	self.freeLen = 0
	return nil
}

// ChunkSize returns the size of every chunk in bytes.
func (self *Pool) ChunkSize() int {
	return self.chunkSize
}

// Blocks returns how many blocks are mapped.
func (self *Pool) Blocks() int {
	return len(self.blocks)
}

// FreeChunks returns how many chunks sit on the free list.
func (self *Pool) FreeChunks() int {
	return self.freeLen
}

func (self *Pool) String() string {
	return fmt.Sprintf(
		"pool{chunk: %v bytes, blocks: %v x %v chunks, free: %v}",
		self.chunkSize, len(self.blocks), self.chunksPerBlock, self.freeLen,
	)
}

// grow maps one more anonymous block and threads its chunks onto the
// front of the free list.
func (self *Pool) grow() error {
	b, err := mmap.MapRegion(nil, self.chunksPerBlock*self.chunkSize, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return errors.Wrapf(err, "could not map pool block")
	}
	self.blocks = append(self.blocks, b)
	base := uint64(len(self.blocks)-1) * uint64(self.chunksPerBlock)
	for i := 0; i < self.chunksPerBlock; i++ {
		next := self.freeHead
		if i+1 < self.chunksPerBlock {
			next = base + uint64(i) + 1
		}
		binary.LittleEndian.PutUint64(self.chunk(base+uint64(i)), next)
	}
	self.freeHead = base
	self.freeLen += self.chunksPerBlock
	return nil
}

// chunk returns the storage for a (block, chunk) reference. The slice
// is capped so a caller cannot run into the neighboring chunk.
func (self *Pool) chunk(ref uint64) []byte {
	bi := int(ref) / self.chunksPerBlock
	off := (int(ref) % self.chunksPerBlock) * self.chunkSize
	return self.blocks[bi][off : off+self.chunkSize : off+self.chunkSize]
}

// ref recovers the reference of a chunk from its backing pointer.
func (self *Pool) ref(chunk []byte) (uint64, error) {
	if len(chunk) != self.chunkSize {
		return 0, errors.Errorf("chunk is %v bytes, pool chunks are %v", len(chunk), self.chunkSize)
	}
	cp := uintptr(unsafe.Pointer(&chunk[0]))
	for bi, b := range self.blocks {
		base := uintptr(unsafe.Pointer(&b[0]))
		if cp < base || cp >= base+uintptr(len(b)) {
			continue
		}
		off := int(cp - base)
		if off%self.chunkSize != 0 {
			return 0, errors.Errorf("chunk is not on a chunk boundary")
		}
		return uint64(bi)*uint64(self.chunksPerBlock) + uint64(off/self.chunkSize), nil
	}
	return 0, errors.Errorf("chunk does not belong to this pool")
}
