// Copyright (c) 2017 Uber Technologies, Inc.
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

package errcode

import "fmt"

// IsCodedError returns true if err is a non-nil error carrying one of
// this package's sentinel codes.
func IsCodedError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*codedError)
	return ok
}

// ErrorCode returns the Code for err, or OK if err is nil or was not
// constructed by this package.
//
// This must not be used to test whether err is a coded error; use
// IsCodedError for that. A plain error unrelated to this package also
// yields OK.
func ErrorCode(err error) Code {
	if err == nil {
		return OK
	}
	ce, ok := err.(*codedError)
	if !ok {
		return OK
	}
	return ce.code
}

// NoErrorf returns a new error with code No.
func NoErrorf(format string, args ...interface{}) error {
	return newError(No, format, args...)
}

// MoreErrorf returns a new error with code More.
func MoreErrorf(format string, args ...interface{}) error {
	return newError(More, format, args...)
}

// AlreadyErrorf returns a new error with code Already.
func AlreadyErrorf(format string, args ...interface{}) error {
	return newError(Already, format, args...)
}

// AddressErrorf returns a new error with code Address.
func AddressErrorf(format string, args ...interface{}) error {
	return newError(Address, format, args...)
}

// NotSupportedErrorf returns a new error with code NotSupported.
func NotSupportedErrorf(format string, args ...interface{}) error {
	return newError(NotSupported, format, args...)
}

// SyntaxErrorf returns a new error with code Syntax.
func SyntaxErrorf(format string, args ...interface{}) error {
	return newError(Syntax, format, args...)
}

// SemanticsErrorf returns a new error with code Semantics.
func SemanticsErrorf(format string, args ...interface{}) error {
	return newError(Semantics, format, args...)
}

// IsMore is a convenience check used throughout the session loop: a
// non-zero, non-More error aborts the caller; More alone means retry.
func IsMore(err error) bool {
	return ErrorCode(err) == More
}

func newError(code Code, format string, args ...interface{}) error {
	return &codedError{code: code, message: fmt.Sprintf(format, args...)}
}

type codedError struct {
	code    Code
	message string
}

func (e *codedError) Error() string {
	if e.message == "" {
		return e.code.String()
	}
	return e.code.String() + ": " + e.message
}
