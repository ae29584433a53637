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

package transport

import "github.com/arfaxad/corosched/errcode"

// AddressError builds an error which indicates a URL could not be parsed
// into a scheme a registered transport recognizes.
func AddressError(err error) error {
	return errcode.AddressErrorf("%v", err)
}

// IsAddressError returns true if err indicates a malformed transport
// address.
func IsAddressError(err error) bool {
	return errcode.ErrorCode(err) == errcode.Address
}

// IsNotSupportedError returns true if err indicates no transport is
// registered for the requested scheme.
func IsNotSupportedError(err error) bool {
	return errcode.ErrorCode(err) == errcode.NotSupported
}
