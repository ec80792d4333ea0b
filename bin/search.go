package bin

import (
	"github.com/mwehr/binfile/errors"
)

// Search binary searches the store for k, assuming the records are
// sorted ascending by key. Only the key prefix of each probed record
// is read. On a hit the record's index is returned. On a miss the
// result is -(p + 1) where p is the smallest index whose key is >= k,
// or the record count when every key is smaller; callers decode p with
// FuzzyIndex. An empty store returns -1.
func (self *Store[K]) Search(k K) (int64, error) {
	if !self.opened {
		return 0, errors.Wrapf(ErrClosed, "search %v", self.path)
	}
	length, err := self.readLength()
	if err != nil {
		return 0, err
	}
	if length == 0 {
		return -1, nil
	}
	buf := make([]byte, self.key.Size)
	l := int64(0)
	r := int64(length) - 1
	for l <= r {
		m := l + (r-l)/2
		if _, err := self.file.ReadAt(buf, self.offset(uint64(m))); err != nil {
			return 0, errors.Wrapf(err, "could not read key at %v", m)
		}
		c := self.key.Compare(self.key.Decode(buf), k)
		if c < 0 {
			l = m + 1
		} else if c > 0 {
			r = m - 1
		} else {
			return m, nil
		}
	}
	return -(l + 1), nil
}

// FuzzyIndex maps any Search result to the index the key either lives
// at or belongs at. Negative misses decode to -(i + 1); non negative
// hits pass through unchanged.
func FuzzyIndex(i int64) uint64 {
	if i < 0 {
		return uint64(-(i + 1))
	}
	return uint64(i)
}
