// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/blockdigest"
	"github.com/bitmark-inc/sealer/blocktemplate"
	"github.com/bitmark-inc/sealer/configuration"
	"github.com/bitmark-inc/sealer/difficulty"
	"github.com/bitmark-inc/sealer/fault"
	"github.com/bitmark-inc/sealer/proof"
	"github.com/bitmark-inc/sealer/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory    = "." // same directory as the configuration file
	defaultNonceSpaceBits   = 64
	defaultProgressInterval = 500 // milliseconds

	defaultLogDirectory = "log"
	defaultLogFile      = "sealer.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// Configuration - settings for one sealing run
type Configuration struct {
	DataDirectory    string               `gluamapper:"data_directory" json:"data_directory"`
	Miner            string               `gluamapper:"miner" json:"miner"`
	Threads          int                  `gluamapper:"threads" json:"threads"`
	Heartbeat        uint64               `gluamapper:"heartbeat" json:"heartbeat"`
	NonceSpaceBits   int                  `gluamapper:"nonce_space_bits" json:"nonce_space_bits"`
	Algorithm        string               `gluamapper:"algorithm" json:"algorithm"`
	Target           string               `gluamapper:"target" json:"target,omitempty"`
	Bits             uint32               `gluamapper:"bits" json:"bits,omitempty"`
	Difficulty       float64              `gluamapper:"difficulty" json:"difficulty,omitempty"`
	Archive          string               `gluamapper:"archive" json:"archive,omitempty"`
	ProgressInterval int                  `gluamapper:"progress_interval" json:"progress_interval"`
	Logging          logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
//
// a blank file name selects the defaults with the current directory as
// the data directory
func getConfiguration(configurationFileName string) (*Configuration, error) {

	options := &Configuration{
		DataDirectory:    defaultDataDirectory,
		Miner:            blocktemplate.DefaultMiner,
		Threads:          0, // use all CPUs
		Heartbeat:        proof.DefaultHeartbeat,
		NonceSpaceBits:   defaultNonceSpaceBits,
		Algorithm:        string(blockdigest.Default),
		ProgressInterval: defaultProgressInterval,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	// absolute path to the main directory
	dataDirectory, err := os.Getwd()
	if nil != err {
		return nil, err
	}

	if "" != configurationFileName {
		configurationFileName, err = filepath.Abs(filepath.Clean(configurationFileName))
		if nil != err {
			return nil, err
		}
		dataDirectory, _ = filepath.Split(configurationFileName)

		if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
			return nil, err
		}
	}

	if err := options.validate(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.Archive {
		options.Archive = util.EnsureAbsolute(options.DataDirectory, options.Archive)
	}

	// the log file must be a plain name inside the log directory
	if !util.IsPlainName(options.Logging.File) {
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// make absolute and create the log directory if it does not already exist
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// check the search settings, applying the thread default
func (c *Configuration) validate() error {
	if c.Threads < 0 {
		return fault.ErrInvalidThreadCount
	}
	if 0 == c.Threads {
		c.Threads = runtime.NumCPU()
	}
	if 0 == c.Heartbeat {
		return fault.ErrInvalidHeartbeat
	}
	if c.NonceSpaceBits < 1 || c.NonceSpaceBits > 64 {
		return fault.ErrInvalidNonceSpace
	}
	if uint64(c.Threads) > c.nonceSpace() {
		return fault.ErrInvalidNonceSpace
	}

	c.Algorithm = strings.ToLower(c.Algorithm)
	if !blockdigest.Algorithm(c.Algorithm).Valid() {
		return fault.ErrInvalidAlgorithm
	}

	if "" == c.Miner {
		c.Miner = blocktemplate.DefaultMiner
	}
	if c.ProgressInterval < 0 {
		c.ProgressInterval = 0
	}

	// an explicit target must be usable before any input is read
	_, err := c.explicitTarget()
	return err
}

// number of nonces searched, 64 bits is the whole uint64 range
func (c *Configuration) nonceSpace() uint64 {
	if c.NonceSpaceBits >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << uint(c.NonceSpaceBits)
}

func (c *Configuration) progressInterval() time.Duration {
	return time.Duration(c.ProgressInterval) * time.Millisecond
}

// configured target: hex first, then compact bits, then difficulty
//
// nil if none is set
func (c *Configuration) explicitTarget() (*difficulty.Target, error) {
	switch {
	case "" != c.Target:
		return difficulty.NewFromHex(strings.ToLower(c.Target))
	case 0 != c.Bits:
		return difficulty.NewFromBits(c.Bits)
	case 0 != c.Difficulty:
		return difficulty.NewFromPdiff(c.Difficulty)
	default:
		return nil, nil
	}
}

// the target for a template, the template's own T unless overridden
func (c *Configuration) target(t *blocktemplate.Template) (*difficulty.Target, error) {
	target, err := c.explicitTarget()
	if nil != err || nil != target {
		return target, err
	}
	return difficulty.NewFromHex(t.T)
}

// the search parameters
func (c *Configuration) parameters(target *difficulty.Target) *proof.Parameters {
	return &proof.Parameters{
		Threads:    c.Threads,
		NonceSpace: c.nonceSpace(),
		Heartbeat:  c.Heartbeat,
		Target:     target,
		Algorithm:  blockdigest.Algorithm(c.Algorithm),
	}
}
