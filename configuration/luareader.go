// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/sealer/fault"
)

// ParseConfigurationFile - execute a Lua file and assign the table it
// returns to a configuration structure
//
// fields absent from the table keep the values already in config
func ParseConfigurationFile(fileName string, config interface{}) error {
	L := newState(fileName)
	defer L.Close()

	if err := L.DoFile(fileName); nil != err {
		return err
	}
	return mapResult(L, config)
}

// ParseConfigurationString - as ParseConfigurationFile for in-memory
// text, name is passed to the script as arg[0]
func ParseConfigurationString(name string, text string, config interface{}) error {
	L := newState(name)
	defer L.Close()

	if err := L.DoString(text); nil != err {
		return err
	}
	return mapResult(L, config)
}

// state with the standard libraries and arg[0] set
func newState(name string) *lua.LState {
	L := lua.NewState()
	L.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(name))
	L.SetGlobal("arg", arg)

	return L
}

// the value on top of the stack must be a table
func mapResult(L *lua.LState, config interface{}) error {
	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.ErrConfigurationResult
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(s string) string {
				return s
			},
			TagName: "gluamapper",
		},
	}
	return mapper.Map(table, config)
}
