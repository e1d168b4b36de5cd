// Command csvlint validates CSV files and reports malformed input with
// line-level diagnostics.
//
// Usage:
//
//	csvlint [-comma ,] [-quote '"'] file.csv ...
//
// The exit status is 0 when every file parses, 1 when any file is
// malformed and 2 on usage errors.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/shapestone/stream-csv/pkg/csv"
)

var (
	comma = flag.String("comma", ",", "field delimiter")
	quote = flag.String("quote", `"`, "quote character")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: csvlint [flags] file.csv ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts := csv.Options{Comma: firstRune(*comma), Quote: firstRune(*quote)}
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		records, err := lint(path, opts)
		if err != nil {
			color.Red("%s: %v", path, err)
			failed = true
			continue
		}
		color.Green("%s: ok (%d records)", path, records)
	}
	if failed {
		os.Exit(1)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// lint reads every record of the file, returning the record count or
// the first error.
func lint(path string, opts csv.Options) (records int, err error) {
	r, err := csv.OpenWithOptions(path, opts, csv.Raw())
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for {
		ok, err := r.HasNext()
		if err != nil {
			return records, err
		}
		if !ok {
			return records, nil
		}
		if _, err := r.Next(); err != nil {
			return records, err
		}
		records++
	}
}
