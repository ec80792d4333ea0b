package bin

import (
	"encoding/binary"
	stderrors "errors"
	"os"
)

import (
	"github.com/mwehr/binfile/errors"
)

var (
	// ErrClosed is returned by every operation on a closed store.
	ErrClosed = stderrors.New("store is closed")
	// ErrOutOfRange is returned when an index or index+count falls
	// outside the record sequence.
	ErrOutOfRange = stderrors.New("index out of range")
	// ErrBadLength is returned when a data buffer is not a whole
	// number of blocks.
	ErrBadLength = stderrors.New("data is not a multiple of the block size")
)

// KeySpec tells a store how to find and compare the search key inside
// a record. The key occupies the first Size bytes of every record.
// Compare follows the usual contract: negative when a < b, zero when
// equal, positive when a > b.
type KeySpec[K any] struct {
	Size    uint64
	Decode  func([]byte) K
	Compare func(a, b K) int
}

// Uint64Key is the stock spec for records keyed by a little endian
// uint64 in their first 8 bytes.
func Uint64Key() KeySpec[uint64] {
	return KeySpec[uint64]{
		Size:   8,
		Decode: binary.LittleEndian.Uint64,
		Compare: func(a, b uint64) int {
			if a < b {
				return -1
			} else if a > b {
				return 1
			}
			return 0
		},
	}
}

// Store is an open connection to one backing file. It is not safe for
// concurrent use; callers serialize access or hold Lock.
type Store[K any] struct {
	path      string
	file      *os.File
	opened    bool
	locked    bool
	key       KeySpec[K]
	blockSize uint64
}

// Init creates (or truncates) the file at path and writes a fresh
// header with a record count of zero. The block size is fixed for the
// lifetime of the file.
func Init[K any](path string, blockSize uint64, key KeySpec[K]) (*Store[K], error) {
	if err := checkKey(key, blockSize); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create %v", path)
	}
	self := &Store[K]{
		path:      path,
		file:      f,
		opened:    true,
		key:       key,
		blockSize: blockSize,
	}
	if err := self.writeLength(0); err != nil {
		f.Close()
		return nil, err
	}
	if err := self.writeBlockSize(blockSize); err != nil {
		f.Close()
		return nil, err
	}
	return self, nil
}

// Open opens an existing store file and trusts its header. The key
// spec must match the one the records were written with; nothing in
// the file records it.
func Open[K any](path string, key KeySpec[K]) (*Store[K], error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %v", path)
	}
	self := &Store[K]{
		path:   path,
		file:   f,
		opened: true,
		key:    key,
	}
	bs, err := self.readBlockSize()
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := checkKey(key, bs); err != nil {
		f.Close()
		return nil, err
	}
	self.blockSize = bs
	return self, nil
}

func checkKey[K any](key KeySpec[K], blockSize uint64) error {
	if blockSize == 0 {
		return errors.Errorf("block size must be non-zero")
	}
	if key.Size == 0 || key.Size > blockSize {
		return errors.Errorf("key size %v does not fit block size %v", key.Size, blockSize)
	}
	if key.Decode == nil || key.Compare == nil {
		return errors.Errorf("key spec is missing Decode or Compare")
	}
	return nil
}

// Close releases the file handle. The store keeps no state in memory;
// everything is re-derived from the header on the next Open.
func (self *Store[K]) Close() error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "close %v", self.path)
	}
	err := self.file.Close()
	self.file = nil
	self.opened = false
	self.locked = false
	if err != nil {
		return errors.Wrapf(err, "could not close %v", self.path)
	}
	return nil
}

// Path returns the path the store was opened with.
func (self *Store[K]) Path() string {
	return self.path
}

// BlockSize returns the record size in bytes. It never changes while
// the store is open.
func (self *Store[K]) BlockSize() uint64 {
	return self.blockSize
}

// Lock takes an exclusive advisory lock on the backing file. It does
// not block: if another process holds the lock an error is returned.
// The lock is released by Unlock or by Close.
func (self *Store[K]) Lock() error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "lock %v", self.path)
	}
	if self.locked {
		return errors.Errorf("%v is already locked", self.path)
	}
	if err := flock(int(self.file.Fd())); err != nil {
		return errors.Wrapf(err, "could not lock %v", self.path)
	}
	self.locked = true
	return nil
}

// Unlock drops the advisory lock taken by Lock.
func (self *Store[K]) Unlock() error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "unlock %v", self.path)
	}
	if !self.locked {
		return errors.Errorf("%v is not locked", self.path)
	}
	if err := funlock(int(self.file.Fd())); err != nil {
		return errors.Wrapf(err, "could not unlock %v", self.path)
	}
	self.locked = false
	return nil
}
