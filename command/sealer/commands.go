// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/archive"
	"github.com/bitmark-inc/sealer/blockdigest"
)

// setup command handler
//
// commands that do not need the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "seal", "start", "run", "config-test", "cfg", "archive", "a":
		return false // need configuration

	case "algorithms", "alg":
		for _, a := range blockdigest.Algorithms() {
			if string(blockdigest.Default) == a {
				fmt.Printf("%s (default)\n", a)
			} else {
				fmt.Printf("%s\n", a)
			}
		}

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--threads=N] [--config-file=FILE] [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  seal                       (run)    - read a block template from stdin and seal it\n")
		fmt.Printf("                                        same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  algorithms                 (alg)    - list the supported digest algorithms\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  archive [DIGEST]           (a)      - list archived seals or show one in full\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "seal"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the archive is opened read only for these commands
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "seal"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "seal", "start", "run":
		return false

	case "archive", "a":
		if "" == options.Archive {
			exitwithstatus.Message("error: no archive configured")
		}

		a, err := archive.Open(options.Archive, true)
		if nil != err {
			log.Errorf("archive: %q  open error: %s", options.Archive, err)
			exitwithstatus.Message("error: archive: %q  open error: %s", options.Archive, err)
		}
		defer a.Close()

		if len(arguments) > 0 {
			err = showArchived(os.Stdout, a, arguments[0])
		} else {
			err = listArchive(os.Stdout, a)
		}
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// one line per archived seal
func listArchive(out io.Writer, a *archive.Archive) error {
	count := 0
	err := a.Each(func(r *archive.Record) error {
		count += 1
		_, err := fmt.Fprintf(out, "%s  %s  %-11s  %8s  %s\n",
			r.Digest,
			r.Nonce,
			r.Algorithm,
			r.Elapsed,
			humanize.Time(r.Timestamp),
		)
		return err
	})
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(out, "%s seals\n", humanize.Comma(int64(count)))
	return err
}

// the full record for one digest
func showArchived(out io.Writer, a *archive.Archive, digestText string) error {
	var digest blockdigest.Digest
	if err := digest.UnmarshalText([]byte(digestText)); nil != err {
		return err
	}

	r, err := a.Get(digest)
	if nil != err {
		return err
	}

	b, err := json.MarshalIndent(r, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", b)
	return err
}
