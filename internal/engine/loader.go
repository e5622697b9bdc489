package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"streacs/internal/config"
	"streacs/internal/models"
	"streacs/pkg/logger"
)

// State is the loader lifecycle. It only moves forward.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Source names, also used as cache keys.
const (
	SourceMarketStructure = "marketStructure"
	SourceRegulators      = "regulators"
	SourceIPP             = "ipp"
	SourceUnbundling      = "unbundling"
	SourceVRE             = "vre"
	SourceWorldMap        = "worldMap"
)

// Report lists where each source came from in the completed load.
type Report map[string]Origin

// Loader populates the Dataset once. Concurrent LoadAll calls share the same
// in-flight load and all observe the same *Dataset.
type Loader struct {
	sources config.Sources
	fetcher *Fetcher
	names   *Normalizer
	log     zerolog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	state  State
	data   *Dataset
	report Report
}

func NewLoader(sources config.Sources, fetcher *Fetcher, log zerolog.Logger) *Loader {
	return &Loader{
		sources: sources,
		fetcher: fetcher,
		names:   DefaultNormalizer(),
		log:     logger.Component(log, "loader"),
	}
}

// State returns the current lifecycle state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Dataset returns the loaded dataset, or false while not ready.
func (l *Loader) Dataset() (*Dataset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data, l.state == StateReady
}

// Report returns the per-source origins of the completed load.
func (l *Loader) Report() Report {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(Report, len(l.report))
	for k, v := range l.report {
		out[k] = v
	}
	return out
}

// LoadAll loads every source exactly once and returns the dataset. Source
// failures never surface here: they degrade to cached or fallback data.
// The load cannot be cancelled; ctx only bounds how long this caller waits,
// and a non-nil error means ctx ended first.
func (l *Loader) LoadAll(ctx context.Context) (*Dataset, error) {
	l.mu.Lock()
	if l.state == StateReady {
		d := l.data
		l.mu.Unlock()
		return d, nil
	}
	l.state = StateLoading
	l.mu.Unlock()

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("load", func() (interface{}, error) {
		// A caller that saw StateLoading may arrive after the load finished.
		if d, ok := l.Dataset(); ok {
			return d, nil
		}
		return l.load(loadCtx), nil
	})

	select {
	case res := <-ch:
		return res.Val.(*Dataset), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) load(ctx context.Context) (ds *Dataset) {
	start := time.Now()
	l.log.Info().Msg("Loading STREACS data...")

	raw := RawData{}
	report := Report{}

	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("Load aborted, continuing with partial data")
		}
		ds = NewDataset(raw, l.names)

		l.mu.Lock()
		l.data = ds
		l.report = report
		l.state = StateReady
		l.mu.Unlock()

		sum := ds.Summary()
		l.log.Info().
			Int("countries", sum.Countries).
			Int("vre_rows", sum.VRERows).
			Int("map_features", sum.MapFeatures).
			Int("skipped_years", sum.SkippedYears).
			Dur("elapsed", time.Since(start)).
			Msg("Load complete")
	}()

	raw.Markets, report[SourceMarketStructure] = loadSource(ctx, l, SourceMarketStructure, l.sources.MarketStructure, fallbackMarketStructure)
	raw.Regulators, report[SourceRegulators] = loadSource(ctx, l, SourceRegulators, l.sources.Regulators, fallbackRegulators)
	raw.IPP, report[SourceIPP] = loadSource(ctx, l, SourceIPP, l.sources.IPP, fallbackIPP)
	raw.Unbundling, report[SourceUnbundling] = loadSource(ctx, l, SourceUnbundling, l.sources.Unbundling, fallbackUnbundling)

	// No fallback for these two: the features they drive degrade instead.
	var vre []models.VREPoint
	vre, report[SourceVRE] = loadSource[[]models.VREPoint](ctx, l, SourceVRE, l.sources.VRE, nil)
	if vre == nil {
		vre = []models.VREPoint{}
	}
	raw.VRE = vre

	var topo Topology
	topo, report[SourceWorldMap] = loadSource[Topology](ctx, l, SourceWorldMap, l.sources.WorldMap, nil)
	if report[SourceWorldMap] != OriginMissing {
		raw.WorldMap = &topo
	}

	return ds
}

// loadSource fetches one source, substituting fallback() when it cannot be
// fetched or read from cache. With a nil fallback the zero value is returned.
func loadSource[T any](ctx context.Context, l *Loader, name, location string, fallback func() T) (T, Origin) {
	v, origin, err := fetchSource[T](ctx, l.fetcher, name, location)
	if err == nil {
		if origin == OriginRemote {
			l.log.Info().Str("source", name).Str("location", location).Msg("Source loaded")
		}
		return v, origin
	}

	if fallback == nil {
		l.log.Warn().Err(err).Str("source", name).Msg("Source not available, dependent features will be limited")
		var zero T
		return zero, OriginMissing
	}

	l.log.Info().Err(err).Str("source", name).Msg("Source not available, using built-in data")
	return fallback(), OriginFallback
}
