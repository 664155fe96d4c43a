// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type InvariantError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrArchiveRecordCorrupt = ProcessError("archive record is corrupt")
	ErrConfigurationResult  = InvalidError("configuration must return a table")
	ErrInputRead            = ProcessError("input stream cannot be read")
	ErrInvalidAlgorithm     = InvalidError("digest algorithm is not supported")
	ErrInvalidBits          = InvalidError("compact difficulty bits are invalid")
	ErrInvalidDifficulty    = InvalidError("difficulty is out of range")
	ErrInvalidDigestLength  = LengthError("digest length is invalid")
	ErrInvalidHeartbeat     = InvalidError("heartbeat interval must be positive")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidNonce         = InvalidError("nonce must be 64 hex characters")
	ErrInvalidNonceSpace    = InvalidError("nonce space is smaller than thread count")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrInvalidTarget        = InvalidError("target must be 64 hex characters")
	ErrInvalidThreadCount   = InvalidError("thread count must be positive")
	ErrMissingField         = InvalidError("template required field is missing")
	ErrMissingParameter     = InvalidError("search parameter is missing")
	ErrNonceFieldMissing    = InvariantError("serialised template has no nonce field")
	ErrNonceSpaceExhausted  = NotFoundError("nonce space searched without a solution")
	ErrNotFound             = NotFoundError("not found")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrSearchCancelled      = ProcessError("search cancelled")
	ErrTemplateParse        = InvalidError("template is not well formed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e InvariantError) Error() string { return string(e) }
func (e LengthError) Error() string    { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool    { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrInvariant(e error) bool { _, ok := e.(InvariantError); return ok }
func IsErrLength(e error) bool    { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := e.(ProcessError); return ok }
