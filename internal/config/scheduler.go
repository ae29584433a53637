// Copyright (c) 2025 Uber Technologies, Inc.
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

package config

import (
	"os"
	"time"
)

// SchedulerConfig is the declarative shape of a worker's on-disk
// configuration: the buffer pool's fixed-memory budget and the
// session processing loop's cooperative time slices. The Listen
// field supports `${VAR}` interpolation against the process
// environment via the `interpolate` tag option.
type SchedulerConfig struct {
	Pool struct {
		// Size is the pool's total byte budget, split across
		// fixed-capacity buffers.
		Size int `config:"size"`
		// MinLevel and MaxLevel bound the level-triggered tier
		// report: available bytes below MinLevel report LOW,
		// above MaxLevel report FULL.
		MinLevel int `config:"min_level"`
		MaxLevel int `config:"max_level"`
	} `config:"pool"`

	Slice struct {
		Short time.Duration `config:"short"`
		Long  time.Duration `config:"long"`
	} `config:"slice"`

	// Listen is the address a server-role binding listens on, e.g.
	// "${HOST}:${PORT}".
	Listen string `config:"listen,interpolate"`

	// SleepTick is decoded from sleep_tick. The scheduler does not
	// read it; its sleep tick interval is sched.SleepTickInterval.
	SleepTick time.Duration `config:"sleep_tick"`

	// MaxInputQueue and MaxInputBuffersUsed are decoded from the file.
	// The sched package does not read them; a server session gates
	// synthesis of a new incoming request on the sched package's own
	// MaxInputQueue and MaxInputBuffersUsed constants.
	MaxInputQueue       int `config:"max_input_queue"`
	MaxInputBuffersUsed int `config:"max_input_buffers_used"`
}

// LoadScheduler decodes src (typically a map produced by unmarshaling
// YAML or JSON into map[string]interface{}) into a SchedulerConfig,
// resolving `${VAR}` references in tagged string fields against the
// process environment.
func LoadScheduler(src interface{}) (SchedulerConfig, error) {
	var cfg SchedulerConfig
	err := DecodeInto(&cfg, src, InterpolateWith(os.LookupEnv))
	return cfg, err
}
