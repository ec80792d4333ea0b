package bin

import (
	"encoding/binary"
	"io"
	"os"
)

import (
	"github.com/klauspost/compress/s2"
	"github.com/spaolacci/murmur3"
)

import (
	"github.com/mwehr/binfile/errors"
)

// Snapshot stream: magic, then the plain 16 byte store header, then a
// murmur3-64 sum of the logical record bytes, then those bytes as an
// s2 compressed stream. Only [0, count) is captured; trailing physical
// bytes never leave the store.
const snapMagic = "binsnap1"

// snapIOBlocks is how many records move per read while snapshotting.
const snapIOBlocks = 64

// Snapshot writes a compressed, checksummed copy of the store's
// logical contents to w. The store is read twice (once to sum, once to
// stream), so it must be quiescent for the duration; Snapshot offers a
// consistent backup, not crash durability.
func (self *Store[K]) Snapshot(w io.Writer) error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "snapshot %v", self.path)
	}
	length, err := self.readLength()
	if err != nil {
		return err
	}
	sum, err := self.sumRecords(length)
	if err != nil {
		return err
	}
	head := make([]byte, len(snapMagic)+headerSize+8)
	copy(head, snapMagic)
	binary.LittleEndian.PutUint64(head[8:], length)
	binary.LittleEndian.PutUint64(head[16:], self.blockSize)
	binary.LittleEndian.PutUint64(head[24:], sum)
	if _, err := w.Write(head); err != nil {
		return errors.Wrapf(err, "could not write snapshot header")
	}
	zw := s2.NewWriter(w)
	if err := self.copyRecords(zw, length); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, "could not finish snapshot stream")
	}
	return nil
}

func (self *Store[K]) sumRecords(length uint64) (uint64, error) {
	h := murmur3.New64()
	if err := self.copyRecords(h, length); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

func (self *Store[K]) copyRecords(w io.Writer, length uint64) error {
	buf := make([]byte, snapIOBlocks*self.blockSize)
	for i := uint64(0); i < length; i += snapIOBlocks {
		n := uint64(snapIOBlocks)
		if length-i < n {
			n = length - i
		}
		chunk := buf[:n*self.blockSize]
		if _, err := self.file.ReadAt(chunk, self.offset(i)); err != nil {
			return errors.Wrapf(err, "could not read records at %v", i)
		}
		if _, err := w.Write(chunk); err != nil {
			return errors.Wrapf(err, "could not copy records at %v", i)
		}
	}
	return nil
}

// Restore recreates a store at path from a Snapshot stream and returns
// it open. The checksum is verified after decompression; on a mismatch
// the partial file is removed.
func Restore[K any](path string, r io.Reader, key KeySpec[K]) (*Store[K], error) {
	head := make([]byte, len(snapMagic)+headerSize+8)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, errors.Wrapf(err, "could not read snapshot header")
	}
	if string(head[:len(snapMagic)]) != snapMagic {
		return nil, errors.Errorf("not a snapshot stream")
	}
	length := binary.LittleEndian.Uint64(head[8:])
	blockSize := binary.LittleEndian.Uint64(head[16:])
	sum := binary.LittleEndian.Uint64(head[24:])

	self, err := Init(path, blockSize, key)
	if err != nil {
		return nil, err
	}
	h := murmur3.New64()
	zr := s2.NewReader(r)
	buf := make([]byte, snapIOBlocks*blockSize)
	for i := uint64(0); i < length; i += snapIOBlocks {
		n := uint64(snapIOBlocks)
		if length-i < n {
			n = length - i
		}
		chunk := buf[:n*blockSize]
		if _, err := io.ReadFull(zr, chunk); err != nil {
			return nil, self.discard(errors.Wrapf(err, "snapshot stream truncated at record %v", i))
		}
		h.Write(chunk)
		if _, err := self.file.WriteAt(chunk, self.offset(i)); err != nil {
			return nil, self.discard(errors.Wrapf(err, "could not restore records at %v", i))
		}
	}
	if h.Sum64() != sum {
		return nil, self.discard(errors.Errorf("snapshot checksum mismatch"))
	}
	if err := self.writeLength(length); err != nil {
		return nil, self.discard(err)
	}
	return self, nil
}

// discard tears down a store whose restore failed partway.
func (self *Store[K]) discard(err error) error {
	self.Close()
	os.Remove(self.path)
	return err
}
