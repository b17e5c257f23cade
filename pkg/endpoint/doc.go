// Package endpoint decides when a speaker has finished a complete thought.
//
// It consumes timestamped speech-to-text segments and answers the hardest
// question in a live voice pipeline: is the user done talking? Cutting a user
// off mid-sentence loses context; waiting too long after a complete request
// feels laggy. The package balances the two with deterministic, rule-based
// analysis over noisy, repeated, filler-laden transcription output.
//
// # Architecture
//
// The package provides several core components:
//
//   - SpeechSegment / AccumulatedQuery: immutable value types for one
//     recognized chunk and one assembled candidate query
//   - Normalizer: cleans segment text (fillers, stutters, duplicates)
//   - Accumulator: buffers accepted segments into a candidate query and
//     tracks the buffer timeout plus a rolling cross-turn context window
//   - FeatureExtractor: derives linguistic and timing features from text
//     plus silence/duration metadata
//   - Strategy: pluggable completeness classification (Linguistic, Hybrid)
//   - Endpointer: orchestrates extraction and strategy, keeps minimal
//     cross-turn context
//
// # Data Flow
//
//	STT segment → Accumulator (filter/normalize/buffer)
//	                   │
//	           on each silence update
//	                   ▼
//	Endpointer (extract features → strategy.Analyze)
//	                   │
//	     CONTINUE │ WAIT │ ENDPOINT (finalize, hand off, reset)
//
// # Concurrency
//
// One live session owns one Accumulator and one Endpointer. The feeding
// pipeline is strictly sequential, so components do no internal locking.
// Instances must never be shared across sessions without external
// synchronization. The shared word sets are read-only and safe everywhere.
//
// There is no background timer: the buffer timeout is detected lazily when a
// segment arrives or ForceCompletion is called, never by a clock goroutine.
//
// # Usage
//
//	cfg := endpoint.DefaultConfig()
//	acc := endpoint.NewAccumulator(cfg.Accumulator)
//	ep := endpoint.NewEndpointer(cfg.Endpointer, endpoint.NewLinguisticStrategy(cfg.Strategy), nil)
//
//	q := acc.AddSegment(seg)
//	res := ep.AnalyzeUtterance(q.Text, seg.SilenceAfter, q.TotalDuration, &q)
//	if res.Decision == endpoint.DecisionEndpoint {
//	    final := acc.ForceCompletion()
//	    // hand final.Text downstream, branching on final.Status
//	}
package endpoint
