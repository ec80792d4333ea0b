package main

import (
	"fmt"
	"os"
	"strconv"
)

import (
	"github.com/timtadh/getopt"
)

import (
	"github.com/mwehr/binfile/escape"
)

var ErrorCodes map[string]int = map[string]int{
	"usage":   0,
	"opts":    3,
	"badint":  5,
	"badfile": 7,
	"store":   8,
}

var UsageMessage string = "bin-tool --help"
var ExtendedMessage string = `
bin-tool -- create, inspect, and search flat fixed-block store files

Stores handled by this tool key their records with a little endian
uint64 in the first 8 bytes of each block.

Global Options
  -h, --help                view this message
  -c, --color               color status output

Commands

  $ bin-tool create --block-size=<bytes> <path>

    Create an empty store. The block size is fixed forever.

  $ bin-tool info <path>

    Print the header fields and the physical file size.

  $ bin-tool append <path> <key>...

    Append one record per key, in the order given. Records are the key
    followed by zero padding.

  $ bin-tool get --index=<i> [--count=<n>] <path>

    Hex dump count records starting at index (count defaults to 1).

  $ bin-tool search --key=<k> <path>

    Binary search a key-sorted store. Prints the index on a hit, or
    the insertion point on a miss.

  $ bin-tool insert --key=<k> <path>

    Search for the key's position and insert a record there, keeping
    the store sorted.

  $ bin-tool dump <path> <snapshot>

    Write a compressed, checksummed snapshot of the store.

  $ bin-tool restore <snapshot> <path>

    Recreate a store file from a snapshot.
`

var useColor bool

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

func ParseUint(str string) uint64 {
	i, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a non-negative int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

func report(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if useColor {
		msg = escape.Paint(escape.Fg(escape.Green), msg)
	}
	fmt.Fprintln(os.Stdout, msg)
}

func fatal(code string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if useColor {
		msg = escape.Paint(escape.Fg(escape.Red), msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(ErrorCodes[code])
}

func main() {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hc",
		[]string{"help", "color"},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-c", "--color":
			useColor = true
		}
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Must supply a command")
		Usage(ErrorCodes["opts"])
	}
	cmd := args[0]
	args = args[1:]
	switch cmd {
	case "create":
		Create(args)
	case "info":
		Info(args)
	case "append":
		Append(args)
	case "get":
		Get(args)
	case "search":
		Search(args)
	case "insert":
		Insert(args)
	case "dump":
		Dump(args)
	case "restore":
		RestoreCmd(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command '%v'\n", cmd)
		Usage(ErrorCodes["opts"])
	}
}
