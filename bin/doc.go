/*
Package bin implements a flat file of fixed size binary records: a 16
byte header followed by an array of equal size blocks. It supports
positional reads and overwrites, appends, ordered insertion with
shifting, and binary search over records sorted ascending by a caller
supplied key.

File layout, all integers little endian:

	offset  size  field
	0       8     record count (u64)
	8       8     block size (u64)
	16      record count * block size  records, contiguous

The record count alone governs the logical length of the file. Physical
bytes past 16 + count*size can be left behind by earlier larger writes
and are never read. The block size is fixed when the file is created
and never changes.

The original format wrote the header in native byte order; this package
fixes little endian so files move between architectures.

Record indices are zero based and always non negative. Out of range
access fails with ErrOutOfRange rather than touching adjacent bytes.

Every operation issues direct reads or writes against the backing file
descriptor, with no buffering beyond the operating system's. There is
no internal coordination: the store is single writer, and Insert in
particular is a multi step read-modify-write that can tear if it races
another writer or is interrupted. Callers that want exclusion across
processes can take the advisory Lock. There is no recovery journal;
Snapshot exists for making consistent copies while the store is quiescent.

Middle insertion rewrites the whole tail after the insertion point, so
its cost is linear in the number of records shifted. The structure is
not meant for high frequency middle insertion; keep that in mind before
reaching for Insert in a hot path.
*/
package bin
