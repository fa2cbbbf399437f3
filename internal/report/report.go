// Package report decodes capture records and reports each outcome through
// logs, metrics and an optional JSON stream.
package report

import (
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/danmuck/dot11dec/internal/capture"
	"github.com/danmuck/dot11dec/internal/dot11"
	"github.com/danmuck/dot11dec/internal/observability"
	"github.com/rs/zerolog"
)

// Result is the decode outcome for one record.
type Result struct {
	Record capture.Record
	Frame  dot11.Frame
	Err    error
}

// Stats tallies outcomes across a run.
type Stats struct {
	Records  int            `json:"records"`
	Decoded  int            `json:"decoded"`
	Failed   int            `json:"failed"`
	ByKind   map[string]int `json:"by_kind"`
	ByReason map[string]int `json:"by_reason"`
}

func (s Stats) Kinds() []string {
	out := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Reporter consumes results in order. It is safe for concurrent use.
type Reporter struct {
	mu          sync.Mutex
	log         zerolog.Logger
	source      string
	includeBody bool
	jsonOut     *json.Encoder
	stats       Stats
}

type Option func(*Reporter)

// WithJSON streams one Summary (or error object) per record to w.
func WithJSON(w io.Writer) Option {
	return func(r *Reporter) {
		r.jsonOut = json.NewEncoder(w)
	}
}

func WithBody(include bool) Option {
	return func(r *Reporter) {
		r.includeBody = include
	}
}

func NewReporter(logger zerolog.Logger, source string, opts ...Option) *Reporter {
	r := &Reporter{
		log:    logger,
		source: source,
		stats: Stats{
			ByKind:   make(map[string]int),
			ByReason: make(map[string]int),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type failureLine struct {
	Index  int    `json:"index"`
	Error  string `json:"error"`
	Reason string `json:"reason"`
	Offset int    `json:"offset"`
}

type frameLine struct {
	Index int `json:"index"`
	dot11.Summary
}

// failureReason labels capture-side failures "capture" and defers to
// dot11.Reason for everything else.
func failureReason(err error) string {
	var perr *capture.PacketError
	if errors.As(err, &perr) {
		return "capture"
	}
	return dot11.Reason(err)
}

func (r *Reporter) Observe(res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Records++
	if res.Err != nil {
		reason := failureReason(res.Err)
		r.stats.Failed++
		r.stats.ByReason[reason]++
		observability.RecordDecode(r.source, "", reason, 0, false)
		r.log.Warn().
			Int("index", res.Record.Index).
			Int("len", len(res.Record.Data)).
			Str("reason", reason).
			Int("offset", dot11.Offset(res.Err)).
			Err(res.Err).
			Msg("decode_failed")
		if r.jsonOut != nil {
			return r.jsonOut.Encode(failureLine{
				Index:  res.Record.Index,
				Error:  res.Err.Error(),
				Reason: reason,
				Offset: dot11.Offset(res.Err),
			})
		}
		return nil
	}

	f := res.Frame
	kind := f.Control.Type.Kind.String()
	r.stats.Decoded++
	r.stats.ByKind[kind]++
	observability.RecordDecode(r.source, kind, "", len(f.Body), true)

	event := r.log.Debug().
		Int("index", res.Record.Index).
		Str("type", f.Control.Type.String()).
		Str("flags", f.Control.Flags().String()).
		Str("a1", f.Address1.String()).
		Str("a2", f.Address2.String()).
		Str("a3", f.Address3.String()).
		Int("body", len(f.Body))
	if f.Address4 != nil {
		event = event.Str("a4", f.Address4.String())
	}
	if f.SequenceControl != nil {
		event = event.Uint16("seq", f.SequenceControl.SequenceNumber).
			Uint8("frag", f.SequenceControl.FragmentNumber)
	}
	event.Msg("frame")

	if r.jsonOut != nil {
		return r.jsonOut.Encode(frameLine{Index: res.Record.Index, Summary: dot11.Summarize(f, r.includeBody)})
	}
	return nil
}

// Stats returns a copy of the running tallies.
func (r *Reporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.stats
	out.ByKind = make(map[string]int, len(r.stats.ByKind))
	for k, v := range r.stats.ByKind {
		out.ByKind[k] = v
	}
	out.ByReason = make(map[string]int, len(r.stats.ByReason))
	for k, v := range r.stats.ByReason {
		out.ByReason[k] = v
	}
	return out
}
