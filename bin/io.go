package bin

import (
	"github.com/mwehr/binfile/errors"
)

// blocks validates that data holds a whole number of blocks and
// returns that number.
func (self *Store[K]) blocks(data []byte) (uint64, error) {
	if uint64(len(data))%self.blockSize != 0 {
		return 0, errors.Wrapf(ErrBadLength, "%v bytes with block size %v", len(data), self.blockSize)
	}
	return uint64(len(data)) / self.blockSize, nil
}

// Read returns n consecutive records starting at index i.
func (self *Store[K]) Read(i, n uint64) ([]byte, error) {
	data := make([]byte, n*self.blockSize)
	if err := self.ReadInto(i, data); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadInto fills data, which must be a whole number of blocks, with
// the records starting at index i. Every record read must lie inside
// the logical sequence.
func (self *Store[K]) ReadInto(i uint64, data []byte) error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "read %v", self.path)
	}
	n, err := self.blocks(data)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	length, err := self.readLength()
	if err != nil {
		return err
	}
	if i >= length || n > length-i {
		return errors.Wrapf(ErrOutOfRange, "read [%v, %v) of %v records", i, i+n, length)
	}
	if _, err := self.file.ReadAt(data, self.offset(i)); err != nil {
		return errors.Wrapf(err, "could not read %v records at %v", n, i)
	}
	return nil
}

// Write overwrites the records starting at index i with data. Writing
// at i == length appends; writing past that would leave a hole and
// fails with ErrOutOfRange. When the write runs past the current tail
// the record count grows to cover it.
func (self *Store[K]) Write(i uint64, data []byte) error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "write %v", self.path)
	}
	n, err := self.blocks(data)
	if err != nil {
		return err
	}
	length, err := self.readLength()
	if err != nil {
		return err
	}
	if i > length {
		return errors.Wrapf(ErrOutOfRange, "write at %v would skip past %v records", i, length)
	}
	if n == 0 {
		return nil
	}
	if _, err := self.file.WriteAt(data, self.offset(i)); err != nil {
		return errors.Wrapf(err, "could not write %v records at %v", n, i)
	}
	if i+n > length {
		return self.writeLength(i + n)
	}
	return nil
}

// Append writes data after the last record and extends the record
// count. It is Write at the current length without the extra header
// read for callers that do not track the length themselves.
func (self *Store[K]) Append(data []byte) error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "append %v", self.path)
	}
	n, err := self.blocks(data)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	length, err := self.readLength()
	if err != nil {
		return err
	}
	if _, err := self.file.WriteAt(data, self.offset(length)); err != nil {
		return errors.Wrapf(err, "could not append %v records", n)
	}
	return self.writeLength(length + n)
}

// Insert places data at index i and shifts every record at or after i
// up by len(data)/blockSize positions. The whole tail is buffered and
// rewritten, so the cost is linear in the records shifted; this is the
// documented price of ordered insertion here, not something to fix.
// The shift is not atomic: an interruption mid insert leaves the tail
// torn.
func (self *Store[K]) Insert(i uint64, data []byte) error {
	if !self.opened {
		return errors.Wrapf(ErrClosed, "insert %v", self.path)
	}
	n, err := self.blocks(data)
	if err != nil {
		return err
	}
	length, err := self.readLength()
	if err != nil {
		return err
	}
	if i > length {
		return errors.Wrapf(ErrOutOfRange, "insert at %v would skip past %v records", i, length)
	}
	if n == 0 {
		return nil
	}
	tail := make([]byte, (length-i)*self.blockSize)
	if len(tail) > 0 {
		if _, err := self.file.ReadAt(tail, self.offset(i)); err != nil {
			return errors.Wrapf(err, "could not read tail at %v", i)
		}
	}
	if _, err := self.file.WriteAt(data, self.offset(i)); err != nil {
		return errors.Wrapf(err, "could not insert %v records at %v", n, i)
	}
	if len(tail) > 0 {
		if _, err := self.file.WriteAt(tail, self.offset(i+n)); err != nil {
			return errors.Wrapf(err, "could not shift tail to %v", i+n)
		}
	}
	return self.writeLength(length + n)
}
