package bin

import "testing"

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"sort"
)

func TestSearchEmpty(x *testing.T) {
	t := (*T)(x)
	s, clean := t.store()
	defer clean()
	i, err := s.Search(42)
	t.assert_nil(err)
	t.assert("empty store returns -1", i == -1)
}

func TestSearchHitsAndMisses(x *testing.T) {
	t := (*T)(x)
	s, clean := t.store()
	defer clean()
	t.assert_nil(s.Append(t.records(10, 20, 30, 40)))

	i, err := s.Search(30)
	t.assert_nil(err)
	t.assert("hit at 2", i == 2)

	i, err = s.Search(25)
	t.assert_nil(err)
	t.assert("miss encodes -3", i == -3)
	t.assert("fuzzy decodes 2", FuzzyIndex(i) == 2)

	i, err = s.Search(5)
	t.assert_nil(err)
	t.assert("below all keys", i == -1 && FuzzyIndex(i) == 0)

	i, err = s.Search(45)
	t.assert_nil(err)
	t.assert("above all keys", i == -5 && FuzzyIndex(i) == 4)
}

func TestSearchThenInsert(x *testing.T) {
	t := (*T)(x)
	s, clean := t.store()
	defer clean()
	t.assert_nil(s.Append(t.records(10, 20, 30, 40)))
	i, err := s.Search(25)
	t.assert_nil(err)
	t.assert("i == -3", i == -3)
	t.assert_nil(s.Insert(FuzzyIndex(i), t.record(25)))
	n, err := s.Length()
	t.assert_nil(err)
	t.assert("n == 5", n == 5)
	want := []uint64{10, 20, 25, 30, 40}
	for j, k := range want {
		rec, err := s.Read(uint64(j), 1)
		t.assert_nil(err)
		t.assert("ordered after insert", binary.LittleEndian.Uint64(rec) == k)
	}
}

func TestSearchOnlyReadsKeyPrefix(x *testing.T) {
	t := (*T)(x)
	s, clean := t.store()
	defer clean()
	// payload bytes after the key are random garbage; only the first
	// 8 bytes may influence the search
	rec := t.record(7)
	t.assert_nil(s.Append(rec))
	i, err := s.Search(7)
	t.assert_nil(err)
	t.assert("found by prefix", i == 0)
	got, err := s.Read(0, 1)
	t.assert_nil(err)
	t.assert("record untouched", bytes.Equal(got, rec))
}

func TestSearchRandom(x *testing.T) {
	t := (*T)(x)
	s, clean := t.store()
	defer clean()

	rng := rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(t.rand_bytes(8)))))
	keys := make([]uint64, 0, 128)
	seen := map[uint64]bool{}
	for len(keys) < 128 {
		// even keys only, so every odd key is a guaranteed miss
		k := uint64(rng.Intn(1 << 20))
		k *= 2
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	t.assert_nil(s.Append(t.records(keys...)))

	for j, k := range keys {
		i, err := s.Search(k)
		t.assert_nil(err)
		t.assert("present key found", i == int64(j))
	}
	for trial := 0; trial < 256; trial++ {
		k := uint64(rng.Intn(1<<21))*2 + 1
		i, err := s.Search(k)
		t.assert_nil(err)
		t.assert("absent key is negative", i < 0)
		p := FuzzyIndex(i)
		t.assert("insertion point in range", p <= uint64(len(keys)))
		if p > 0 {
			t.assert("keys before are smaller", keys[p-1] < k)
		}
		if p < uint64(len(keys)) {
			t.assert("keys after are larger", keys[p] > k)
		}
	}
}

func TestFuzzyIndex(x *testing.T) {
	t := (*T)(x)
	t.assert("hit passes through", FuzzyIndex(0) == 0, FuzzyIndex(7) == 7)
	t.assert("miss decodes", FuzzyIndex(-1) == 0, FuzzyIndex(-3) == 2, FuzzyIndex(-8) == 7)
}
