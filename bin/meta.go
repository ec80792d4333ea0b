package bin

import (
	"encoding/binary"
)

import (
	"github.com/mwehr/binfile/errors"
)

const (
	headerSize      = 16
	lengthOffset    = 0
	blockSizeOffset = 8
)

// offset maps a record index to its byte offset in the file. Valid
// only for indices the caller has already range checked.
func (self *Store[K]) offset(i uint64) int64 {
	return int64(headerSize + i*self.blockSize)
}

// Length reads the record count from the header. It is read fresh on
// every call so a write through the same handle is always observed.
func (self *Store[K]) Length() (uint64, error) {
	if !self.opened {
		return 0, errors.Wrapf(ErrClosed, "length of %v", self.path)
	}
	return self.readLength()
}

func (self *Store[K]) readLength() (uint64, error) {
	return self.readField(lengthOffset, "record count")
}

func (self *Store[K]) writeLength(n uint64) error {
	return self.writeField(lengthOffset, n, "record count")
}

func (self *Store[K]) readBlockSize() (uint64, error) {
	return self.readField(blockSizeOffset, "block size")
}

func (self *Store[K]) writeBlockSize(n uint64) error {
	return self.writeField(blockSizeOffset, n, "block size")
}

func (self *Store[K]) readField(off int64, field string) (uint64, error) {
	var buf [8]byte
	if _, err := self.file.ReadAt(buf[:], off); err != nil {
		return 0, errors.Wrapf(err, "could not read %v of %v", field, self.path)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (self *Store[K]) writeField(off int64, n uint64, field string) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	if _, err := self.file.WriteAt(buf[:], off); err != nil {
		return errors.Wrapf(err, "could not write %v of %v", field, self.path)
	}
	return nil
}
