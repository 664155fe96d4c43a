// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/archive"
	"github.com/bitmark-inc/sealer/blocktemplate"
	"github.com/bitmark-inc/sealer/fault"
	"github.com/bitmark-inc/sealer/progress"
	"github.com/bitmark-inc/sealer/proof"
	sealerVersion "github.com/bitmark-inc/sealer/version"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = sealerVersion.Version

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "threads", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 't'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if len(options["config-file"]) > 1 {
		exitwithstatus.Message("%s: at most one config-file option is allowed, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := ""
	if 1 == len(options["config-file"]) {
		configurationFile = options["config-file"][0]
	}
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if n := len(options["threads"]); n > 0 {
		threads, err := strconv.Atoi(options["threads"][n-1])
		if nil != err {
			exitwithstatus.Message("%s: invalid threads: %q  error: %s", program, options["threads"][n-1], err)
		}
		theConfiguration.Threads = threads
		if err := theConfiguration.validate(); nil != err {
			exitwithstatus.Message("%s: threads: %d  error: %s", program, threads, err)
		}
	}

	quiet := len(options["quiet"]) > 0
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// these commands are allowed to access the archive
	if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration) {
		return
	}

	// ------------------
	// start of real main
	// ------------------

	data, err := ioutil.ReadAll(os.Stdin)
	if nil != err {
		log.Errorf("read stdin error: %s", err)
		exitwithstatus.Message("%s: %s", program, fault.ErrInputRead)
	}

	// malformed input stops here, before any worker is started
	template, err := blocktemplate.Load(data, theConfiguration.Miner)
	if nil != err {
		log.Errorf("template load error: %s  input bytes: %d", err, len(data))
		exitwithstatus.Message("%s: %s", program, err)
	}

	target, err := theConfiguration.target(template)
	if nil != err {
		log.Errorf("target error: %s", err)
		exitwithstatus.Message("%s: %s", program, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch
		log.Infof("received signal: %v", sig)
		if !quiet {
			fmt.Fprintf(os.Stderr, "\nreceived signal: %v\n", sig)
			fmt.Fprintf(os.Stderr, "\nshutting down…\n")
		}
		cancel()
	}()

	var display io.Writer = os.Stderr
	if quiet {
		display = nil
	}

	parameters := theConfiguration.parameters(target)
	parameters.Output = os.Stdout
	parameters.Reporter = progress.NewMeter(display, theConfiguration.progressInterval(), target.ExpectedHashes())

	result, err := proof.Seal(ctx, template, parameters, log)
	if nil != err {
		exitwithstatus.Message("%s: %s", program, err)
	}

	if "" != theConfiguration.Archive {
		err := saveSeal(theConfiguration.Archive, template, parameters, result)
		if nil != err {
			log.Errorf("archive: %q  error: %s", theConfiguration.Archive, err)
			exitwithstatus.Message("%s: archive error: %s", program, err)
		}
	}
}

// record the sealed template in the archive
func saveSeal(name string, template *blocktemplate.Template, parameters *proof.Parameters, result *proof.Result) error {
	sealed, err := template.Serialise()
	if nil != err {
		return err
	}

	a, err := archive.Open(name, false)
	if nil != err {
		return err
	}
	defer a.Close()

	record := &archive.Record{
		Digest:    result.Digest,
		Nonce:     result.Nonce,
		Algorithm: parameters.Algorithm,
		Target:    parameters.Target,
		Elapsed:   result.Elapsed,
		Sealed:    json.RawMessage(sealed),
	}
	return a.Put(record)
}
