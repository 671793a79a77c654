// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package test has assertions shared by the package tests.
package test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/pkg/errors"
)

// Assert wraps a testing.Test or Benchmark with several assertions.
type Assert struct {
	testing.TB
}

// Nil asserts that there is no error
func (assert Assert) Nil(err error) {
	assert.Helper()
	if err != nil {
		assert.Fatal(err)
	}
}

// NonNil asserts that there is an error
func (assert Assert) NonNil(err error) {
	assert.Helper()
	if err == nil {
		assert.Fatal("no error")
	}
}

// Error asserts that an error matches the given error (through any wraps),
// string, regex, or bool. If v is true, asserts err isn't nil; otherwise,
// if false, asserts that it's nil.
func (assert Assert) Error(err error, v interface{}) {
	assert.Helper()
	switch t := v.(type) {
	case error:
		if !errors.Is(err, t) {
			assert.Fatalf("%v: expected %q", err, t.Error())
		}
	case string:
		if err == nil || err.Error() != t {
			assert.Fatalf("%v: expected %q", err, t)
		}
	case *regexp.Regexp:
		if err == nil || !t.MatchString(err.Error()) {
			assert.Fatalf("%v: expected @(%s)", err, t)
		}
	case bool:
		if t {
			assert.NonNil(err)
		} else {
			assert.Nil(err)
		}
	default:
		assert.Fatal("can't match:", t)
	}
}

// Equal asserts comparable equality.
func (assert Assert) Equal(got, want interface{}) {
	assert.Helper()
	if got != want {
		assert.Fatalf("%v\n\t!= %v", got, want)
	}
}

// Match asserts string pattern match.
func (assert Assert) Match(s, pattern string) {
	assert.Helper()
	if !regexp.MustCompile(pattern).MatchString(s) {
		assert.Fatalf("%q\n\t!= @(%s)", s, pattern)
	}
}

// True asserts flag.
func (assert Assert) True(t bool) {
	assert.Helper()
	if !t {
		assert.Fatal("not true")
	}
}

// False is not True.
func (assert Assert) False(t bool) {
	assert.Helper()
	if t {
		assert.Fatal("not false")
	}
}

// Panic asserts that f panics with a value whose text matches pattern.
func (assert Assert) Panic(f func(), pattern string) {
	assert.Helper()
	defer func() {
		assert.Helper()
		r := recover()
		if r == nil {
			assert.Fatal("didn't panic")
		}
		assert.Match(fmt.Sprint(r), pattern)
	}()
	f()
}
