// Command ibancheck validates IBANs given as arguments or, with no
// arguments, one per line on stdin.
//
//	ibancheck [-strict] [-human] [IBAN ...]
//
// Each input yields "<input>\tOK\t<form>" or "<input>\tINVALID\t<reason>".
// Exit status: 0 all valid, 1 any invalid, 2 usage or read error.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vortex-fintech/go-iban/iban"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	strict bool
	human  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ibancheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ibancheck [-strict] [-human] [IBAN ...]")
		fs.PrintDefaults()
	}

	var opts options
	fs.BoolVar(&opts.strict, "strict", false, "reject separators inside the IBAN")
	fs.BoolVar(&opts.human, "human", false, "print the grouped human-readable form")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	allValid := true
	check := func(input string) {
		if !checkOne(out, input, opts) {
			allValid = false
		}
	}

	if fs.NArg() > 0 {
		for _, a := range fs.Args() {
			check(a)
		}
	} else {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			check(line)
		}
		if err := sc.Err(); err != nil {
			out.Flush()
			fmt.Fprintf(stderr, "ibancheck: read stdin: %v\n", err)
			return exitUsage
		}
	}

	if !allValid {
		return exitInvalid
	}
	return exitOK
}

// checkOne writes the result line for input and reports whether it is valid.
func checkOne(w io.Writer, input string, opts options) bool {
	parse := iban.ParseLoose
	if opts.strict {
		parse = iban.Parse
	}

	v, err := parse(input)
	if err == nil {
		err = iban.Verify(v)
	}
	if err != nil {
		reason, ok := iban.ReasonOf(err)
		if !ok {
			reason = iban.Reason(err.Error())
		}
		fmt.Fprintf(w, "%s\tINVALID\t%s\n", input, reason)
		return false
	}

	form := v.MachineForm()
	if opts.human {
		form = v.HumanReadable()
	}
	fmt.Fprintf(w, "%s\tOK\t%s\n", input, form)
	return true
}
