// Copyright (c) 2016 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package errcode defines the well-known sentinel codes the scheduler
// core returns to the application, distinct from propagated OS-level
// errors.
package errcode

import "strconv"

// Code is a well-known sentinel the core hands back to application
// callbacks or to callers of the public API. It is never used for
// transport or OS-level failures, which are propagated as-is.
type Code int

const (
	// OK is not an error.
	OK Code = iota
	// No indicates no match or no data is available yet. Used, for
	// example, when a buffer-wait is denied rather than failed.
	No
	// More indicates the operation is incomplete and must be retried;
	// returned by application callbacks that need another pass.
	More
	// Already indicates the requested state change is a no-op because
	// it already holds (e.g. priority already acquired by the caller).
	Already
	// Address indicates a transport address failed to parse.
	Address
	// NotSupported indicates the operation or URL scheme has no
	// registered transport.
	NotSupported
	// Syntax indicates malformed input at the parse layer.
	Syntax
	// Semantics indicates structurally valid but semantically invalid
	// input at the parse layer.
	Semantics
)

var codeToString = map[Code]string{
	OK:           "OK",
	No:           "NO",
	More:         "MORE",
	Already:      "ALREADY",
	Address:      "ADDRESS",
	NotSupported: "NOT_SUPPORTED",
	Syntax:       "SYNTAX",
	Semantics:    "SEMANTICS",
}

func (c Code) String() string {
	if s, ok := codeToString[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}
