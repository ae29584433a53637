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

package corosched

import (
	"io/ioutil"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/arfaxad/corosched/internal/config"
)

// WatchConfig watches path for writes and, on every one, re-decodes it as
// a SchedulerConfig and pushes Pool.MinLevel/Pool.MaxLevel into sc via
// SetPoolLevels — nothing else in the file is live-reloadable, matching
// spec.md's static-pool-sizing model everywhere except the tier levels.
// The returned stop func closes the underlying watcher; calling it more
// than once is safe. Off by default: an embedder opts in by calling this
// once after New, mirroring how the teacher's config layer is a decode
// step the caller invokes, not ambient background behavior.
func WatchConfig(sc *Scheduler, path string, log *zap.Logger) (stop func(), err error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	reload := func() {
		raw, err := ioutil.ReadFile(path)
		if err != nil {
			log.Warn("config watch: read failed", zap.String("path", path), zap.Error(err))
			return
		}
		var m config.AttributeMap
		if err := yaml.Unmarshal(raw, &m); err != nil {
			log.Warn("config watch: parse failed", zap.String("path", path), zap.Error(err))
			return
		}
		cfg, err := config.LoadScheduler(map[string]interface{}(m))
		if err != nil {
			log.Warn("config watch: decode failed", zap.String("path", path), zap.Error(err))
			return
		}
		sc.SetPoolLevels(cfg.Pool.MinLevel, cfg.Pool.MaxLevel)
		log.Info("config watch: pool levels reloaded",
			zap.Int("min_level", cfg.Pool.MinLevel),
			zap.Int("max_level", cfg.Pool.MaxLevel),
		)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					reload()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("config watch: watcher error", zap.Error(err))
			case <-done:
				return
			}
		}
	}()

	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		close(done)
		w.Close()
	}, nil
}
