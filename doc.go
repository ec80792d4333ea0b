/*
binfile is a small collection of storage and compute primitives. The
centerpiece is the bin package: a flat file of fixed size binary
records behind a 16 byte header, with positional reads and writes,
ordered insertion, and binary search over records sorted by a caller
supplied key.

The sibling packages are independent leaf utilities. None of them talk
to the store or to each other:

1. pool - a fixed chunk free list allocator backed by anonymous memory
mappings.

2. genetic - a generational selection/crossover/mutation driver.

3. ann - a feed forward neural network laid out in flat backing arrays.

4. escape - ANSI escape code helpers for terminal output.

5. errors - a simple error package which maintains a stack trace with
every error. Used by everything above.

The bin-tool command wraps the bin package for creating, inspecting,
and searching store files from the shell.
*/
package binfile
