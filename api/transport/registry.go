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

import (
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/arfaxad/corosched/errcode"
)

// Registrant is a single transport module registered against a scheme,
// matched the way the core finds a transport for a URL like
// "tcp://host:port" or "unix://path" (an empty scheme selects the
// interactive-terminal transport).
type Registrant struct {
	// Scheme is the URL-prefix this registrant answers to.
	Scheme string

	// Module opens, closes, and connects bindings for this scheme.
	Module Module
}

// Registry maintains the set of transport modules available to the
// scheduler, keyed by URL scheme.
type Registry interface {
	// Schemes returns the sorted list of registered schemes.
	Schemes() []string

	// Choose resolves rawurl to the Module responsible for it, or
	// returns a NotSupported error if no module claims the scheme.
	Choose(rawurl string) (Module, *url.URL, error)
}

// Registrar extends Registry with the ability to add modules.
type Registrar interface {
	Registry

	// Register adds zero or more registrants. A later registration of
	// the same scheme replaces the earlier one.
	Register(rs ...Registrant)
}

// NewRegistry returns an empty, concurrency-safe Registrar.
func NewRegistry() Registrar {
	return &registry{modules: make(map[string]Module)}
}

type registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

func (r *registry) Register(rs ...Registrant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range rs {
		r.modules[reg.Scheme] = reg.Module
	}
}

func (r *registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schemes := make([]string, 0, len(r.modules))
	for s := range r.modules {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

func (r *registry) Choose(rawurl string) (Module, *url.URL, error) {
	if rawurl == "" {
		// Empty spec selects the interactive-terminal transport,
		// registered under the empty scheme.
		r.mu.RLock()
		m, ok := r.modules[""]
		r.mu.RUnlock()
		if !ok {
			return nil, nil, errcode.NotSupportedErrorf("no transport registered for the interactive terminal")
		}
		return m, &url.URL{}, nil
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, nil, AddressError(err)
	}

	r.mu.RLock()
	m, ok := r.modules[u.Scheme]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, errcode.NotSupportedErrorf("no transport registered for scheme %q", u.Scheme)
	}
	return m, u, nil
}

// MustParse is a convenience for transports that need to validate a URL
// eagerly and turn parse failures into an AddressError.
func MustParse(rawurl string) (*url.URL, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, AddressError(fmt.Errorf("%s: %w", rawurl, err))
	}
	return u, nil
}
