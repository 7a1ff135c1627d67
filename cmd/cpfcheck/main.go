// Command cpfcheck validates CPFs given as arguments, or one per line on
// stdin, and exits with status 1 when any of them is invalid.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cadastro-app/cadastro/internal/cpf"
)

func main() {
	quiet := flag.Bool("q", false, "only set the exit status")
	flag.Parse()

	var ok bool
	var err error
	if flag.NArg() > 0 {
		ok = checkAll(os.Stdout, flag.Args(), *quiet)
	} else {
		ok, err = checkLines(os.Stdout, os.Stdin, *quiet)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(2)
	}
	if !ok {
		os.Exit(1)
	}
}

func checkAll(w io.Writer, inputs []string, quiet bool) bool {
	ok := true
	for _, in := range inputs {
		if !report(w, in, quiet) {
			ok = false
		}
	}
	return ok
}

func checkLines(w io.Writer, r io.Reader, quiet bool) (bool, error) {
	ok := true
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if !report(w, sc.Text(), quiet) {
			ok = false
		}
	}
	return ok, sc.Err()
}

func report(w io.Writer, in string, quiet bool) bool {
	v := cpf.Check(in)
	if !quiet {
		if v.Valid {
			fmt.Fprintf(w, "%s\tvalid\n", in)
		} else {
			fmt.Fprintf(w, "%s\tinvalid\t%s\n", in, v.Reason)
		}
	}
	return v.Valid
}
