package groundwater

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// DefaultProviderTimeout bounds each provider attempt.
const DefaultProviderTimeout = 10 * time.Second

// DefaultSyntheticConfidence is the confidence tagged onto synthetic records.
const DefaultSyntheticConfidence = 0.5

// Options configures an Aggregator. Providers are tried strictly in slice
// order; tests override them with doubles instead of mutating environment.
type Options struct {
	// Providers in priority order. May be empty, in which case every query
	// resolves through the synthetic tier.
	Providers []Provider

	// Timeout bounds each individual provider attempt. Zero means
	// DefaultProviderTimeout.
	Timeout time.Duration

	// Resolver names the queried location. Nil falls back to the offline
	// resolver without a geocoding key.
	Resolver *Resolver

	// SyntheticConfidence overrides the confidence of synthetic records.
	// Zero means DefaultSyntheticConfidence.
	SyntheticConfidence float64
}

// Aggregator queries providers in priority order and falls back to synthetic
// data when all of them fail. It keeps no state between calls beyond its
// configuration, so concurrent calls are independent.
type Aggregator struct {
	providers []Provider
	timeout   time.Duration
	resolver  *Resolver
	synthConf float64
}

// NewAggregator creates an Aggregator from opts.
func NewAggregator(opts Options) *Aggregator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = NewResolver("")
	}
	synthConf := opts.SyntheticConfidence
	if synthConf <= 0 {
		synthConf = DefaultSyntheticConfidence
	}
	return &Aggregator{
		providers: opts.Providers,
		timeout:   timeout,
		resolver:  resolver,
		synthConf: synthConf,
	}
}

// Fetch resolves groundwater data for the coordinate. Providers are tried one
// at a time in priority order; the first success wins. Timeouts, transport
// errors, bad statuses and malformed payloads are all equivalent failures that
// advance the chain, and the expired context cancels the in-flight request so
// abandoned providers stop consuming sockets. Exhaustion is not an error: the
// terminal synthetic tier always produces a record, so the envelope carries
// Success=false only if synthesis itself panics, which must not happen for
// any real-valued input.
func (a *Aggregator) Fetch(ctx context.Context, lat, lon float64) (result Result) {
	c := Coordinate{Lat: lat, Lon: lon}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: record synthesis panicked for %s: %v", c.Key(), r)
			result = Result{
				Success: false,
				Error:   fmt.Sprintf("internal error synthesizing record: %v", r),
				Source:  SourceSynthetic,
			}
		}
	}()

	for _, p := range a.providers {
		pctx, cancel := context.WithTimeout(ctx, a.timeout)
		rec, err := p.Fetch(pctx, c)
		cancel()
		if err != nil {
			log.Printf("provider %s failed for %s: %v", p.Name(), c.Key(), err)
			continue
		}

		a.finalize(&rec, c, p.Name(), p.Confidence())
		return Result{Success: true, Data: &rec, Source: p.Name()}
	}

	if len(a.providers) > 0 {
		log.Printf("all %d providers failed for %s; using synthetic data", len(a.providers), c.Key())
	}

	rec := Synthesize(c)
	a.finalize(&rec, c, SourceSynthetic, a.synthConf)
	return Result{Success: true, Data: &rec, Source: SourceSynthetic}
}

// finalize stamps provenance and resolves the location. Confidence is set
// exactly once here from the contributing provider, never overwritten
// downstream.
func (a *Aggregator) finalize(rec *Record, c Coordinate, source string, confidence float64) {
	rec.Location = a.resolver.Resolve(c)
	if rec.Groundwater.Station == "" {
		rec.Groundwater.Station = source
	}
	rec.Metadata = Metadata{
		FetchID:    uuid.NewString(),
		DataSource: source,
		Endpoint:   rec.Metadata.Endpoint,
		Confidence: confidence,
		FetchedAt:  clock.Now().UTC(),
	}
}
