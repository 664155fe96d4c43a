// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

// the shutdown and completed channels for one process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for a started set of processes
type T struct {
	s []shutdown
}

// Process - a background process must return from Run soon after
// the shutdown channel is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes, all receiving the same args
func Start(processes Processes, args interface{}) *T {

	register := &T{
		s: make([]shutdown, len(processes)),
	}

	for i, p := range processes {
		sh := make(chan struct{})
		finished := make(chan struct{})
		register.s[i].shutdown = sh
		register.s[i].finished = finished

		go func(p Process) {
			defer close(finished)
			p.Run(args, sh)
		}(p)
	}
	return register
}

// Stop - signal every process to shut down and wait for all of them
//
// safe to call more than once
func (t *T) Stop() {
	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, s := range t.s {
		select {
		case <-s.shutdown:
		default:
			close(s.shutdown)
		}
	}

	// wait for finished
	for _, s := range t.s {
		<-s.finished
	}
}
