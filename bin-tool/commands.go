package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
)

import (
	"github.com/timtadh/getopt"
)

import (
	"github.com/mwehr/binfile/bin"
)

func openStore(path string) *bin.Store[uint64] {
	s, err := bin.Open(path, bin.Uint64Key())
	if err != nil {
		fatal("badfile", "could not open %v: %v", path, err)
	}
	return s
}

func record(s *bin.Store[uint64], key uint64) []byte {
	data := make([]byte, s.BlockSize())
	binary.LittleEndian.PutUint64(data, key)
	return data
}

func Create(args []string) {
	args, optargs, err := getopt.GetOpt(args, "h", []string{"help", "block-size="})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	blockSize := uint64(0)
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "--block-size":
			blockSize = ParseUint(oa.Arg())
		}
	}
	if blockSize == 0 {
		fmt.Fprintln(os.Stderr, "Must supply a --block-size")
		Usage(ErrorCodes["opts"])
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Must supply a path")
		Usage(ErrorCodes["opts"])
	}
	s, err := bin.Init(args[0], blockSize, bin.Uint64Key())
	if err != nil {
		fatal("store", "could not create %v: %v", args[0], err)
	}
	defer s.Close()
	report("created %v with block size %v", args[0], blockSize)
}

func Info(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Must supply a path")
		Usage(ErrorCodes["opts"])
	}
	s := openStore(args[0])
	defer s.Close()
	length, err := s.Length()
	if err != nil {
		fatal("store", "%v", err)
	}
	fi, err := os.Stat(args[0])
	if err != nil {
		fatal("badfile", "%v", err)
	}
	fmt.Printf("path:         %v\n", args[0])
	fmt.Printf("records:      %v\n", length)
	fmt.Printf("block size:   %v\n", s.BlockSize())
	fmt.Printf("logical size: %v\n", 16+length*s.BlockSize())
	fmt.Printf("file size:    %v\n", fi.Size())
}

func Append(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Must supply a path and at least one key")
		Usage(ErrorCodes["opts"])
	}
	s := openStore(args[0])
	defer s.Close()
	data := make([]byte, 0, uint64(len(args)-1)*s.BlockSize())
	for _, arg := range args[1:] {
		data = append(data, record(s, ParseUint(arg))...)
	}
	if err := s.Append(data); err != nil {
		fatal("store", "append failed: %v", err)
	}
	report("appended %v records to %v", len(args)-1, args[0])
}

func Get(args []string) {
	args, optargs, err := getopt.GetOpt(args, "h", []string{"help", "index=", "count="})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	index := uint64(0)
	count := uint64(1)
	haveIndex := false
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "--index":
			index = ParseUint(oa.Arg())
			haveIndex = true
		case "--count":
			count = ParseUint(oa.Arg())
		}
	}
	if !haveIndex {
		fmt.Fprintln(os.Stderr, "Must supply an --index")
		Usage(ErrorCodes["opts"])
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Must supply a path")
		Usage(ErrorCodes["opts"])
	}
	s := openStore(args[0])
	defer s.Close()
	data, err := s.Read(index, count)
	if err != nil {
		fatal("store", "read failed: %v", err)
	}
	bs := s.BlockSize()
	for i := uint64(0); i < count; i++ {
		rec := data[i*bs : (i+1)*bs]
		fmt.Printf("%v\t%v\t%v\n", index+i, binary.LittleEndian.Uint64(rec), hex.EncodeToString(rec))
	}
}

func keyArg(args []string) (uint64, []string) {
	args, optargs, err := getopt.GetOpt(args, "h", []string{"help", "key="})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	key := uint64(0)
	haveKey := false
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "--key":
			key = ParseUint(oa.Arg())
			haveKey = true
		}
	}
	if !haveKey {
		fmt.Fprintln(os.Stderr, "Must supply a --key")
		Usage(ErrorCodes["opts"])
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Must supply a path")
		Usage(ErrorCodes["opts"])
	}
	return key, args
}

func Search(args []string) {
	key, args := keyArg(args)
	s := openStore(args[0])
	defer s.Close()
	i, err := s.Search(key)
	if err != nil {
		fatal("store", "search failed: %v", err)
	}
	if i >= 0 {
		report("found %v at %v", key, i)
	} else {
		report("%v not found, would insert at %v", key, bin.FuzzyIndex(i))
	}
}

func Insert(args []string) {
	key, args := keyArg(args)
	s := openStore(args[0])
	defer s.Close()
	i, err := s.Search(key)
	if err != nil {
		fatal("store", "search failed: %v", err)
	}
	at := bin.FuzzyIndex(i)
	if err := s.Insert(at, record(s, key)); err != nil {
		fatal("store", "insert failed: %v", err)
	}
	report("inserted %v at %v", key, at)
}

func Dump(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Must supply a store path and a snapshot path")
		Usage(ErrorCodes["opts"])
	}
	s := openStore(args[0])
	defer s.Close()
	out, err := os.Create(args[1])
	if err != nil {
		fatal("badfile", "could not create %v: %v", args[1], err)
	}
	defer out.Close()
	if err := s.Snapshot(out); err != nil {
		fatal("store", "snapshot failed: %v", err)
	}
	report("dumped %v to %v", args[0], args[1])
}

func RestoreCmd(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Must supply a snapshot path and a store path")
		Usage(ErrorCodes["opts"])
	}
	in, err := os.Open(args[0])
	if err != nil {
		fatal("badfile", "could not open %v: %v", args[0], err)
	}
	defer in.Close()
	s, err := bin.Restore(args[1], in, bin.Uint64Key())
	if err != nil {
		fatal("store", "restore failed: %v", err)
	}
	defer s.Close()
	length, err := s.Length()
	if err != nil {
		fatal("store", "%v", err)
	}
	report("restored %v records into %v", length, args[1])
}
