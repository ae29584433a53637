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

package metrics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/prometheus/client_golang/prometheus"
	promproto "github.com/prometheus/client_model/go"
)

// Opts configure a Counter or Gauge.
type Opts struct {
	Name        string
	Help        string
	ConstLabels Labels
}

func (o Opts) describe() *prometheus.Desc {
	return prometheus.NewDesc(o.Name, o.Help, nil, prometheus.Labels(o.ConstLabels))
}

func (o Opts) validate() error {
	if !IsValidName(o.Name) {
		return fmt.Errorf("metric name %q is not a valid metric name", o.Name)
	}
	if o.Help == "" {
		return errors.New("metric help must not be empty")
	}
	for k, v := range o.ConstLabels {
		if !IsValidName(k) || !IsValidLabelValue(v) {
			return fmt.Errorf("label %q=%q contains invalid characters", k, v)
		}
	}
	return nil
}

// labelPairs renders ConstLabels into the sorted form the Prometheus wire
// format expects.
func (o Opts) labelPairs() []*promproto.LabelPair {
	if len(o.ConstLabels) == 0 {
		return nil
	}
	keys := make([]string, 0, len(o.ConstLabels))
	for k := range o.ConstLabels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]*promproto.LabelPair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, &promproto.LabelPair{
			Name:  proto.String(k),
			Value: proto.String(o.ConstLabels[k]),
		})
	}
	return pairs
}
