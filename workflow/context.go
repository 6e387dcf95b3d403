package workflow

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/internal/metrics"
	istats "github.com/go-sif/tabular/internal/stats"
	"github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/ops"
	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ContextConf configures a StatsContext
type ContextConf struct {
	Logger      logr.Logger           // Logger receives pass progress at V(1) and failures. Defaults to logr.Discard()
	Parallelism int                   // Parallelism bounds the number of Batches fitted at once by FitParallel. Defaults to GOMAXPROCS
	Registerer  prometheus.Registerer // Registerer, if set, receives fitting-pass metrics
}

type fitState map[string][]*tabular.StatState

// StatsContext holds the statistics fitted for a Workflow. Fitting passes build new
// state privately and swap it in when the pass succeeds, so readers always observe
// either the previous state or the new one. A StatsContext may not be fitted by more
// than one goroutine at a time, but may be read by any number of them.
type StatsContext struct {
	workflow *Workflow
	conf     *ContextConf
	metrics  *metrics.FitMetrics
	fitLock  sync.Mutex
	lock     sync.RWMutex
	state    fitState
	fitID    uuid.UUID
	stats    *istats.RunStatistics
}

// NewStatsContext creates an empty StatsContext for a Workflow
func NewStatsContext(w *Workflow, conf *ContextConf) (*StatsContext, error) {
	if w == nil {
		return nil, fmt.Errorf("StatsContext requires a Workflow")
	}
	if conf == nil {
		conf = &ContextConf{}
	} else {
		c := *conf
		conf = &c
	}
	if conf.Logger.GetSink() == nil {
		conf.Logger = logr.Discard()
	}
	if conf.Parallelism <= 0 {
		conf.Parallelism = runtime.GOMAXPROCS(0)
	}
	m, err := metrics.NewFitMetrics(conf.Registerer)
	if err != nil {
		return nil, err
	}
	return &StatsContext{workflow: w, conf: conf, metrics: m}, nil
}

// Rebind creates a StatsContext for another Workflow which starts from the committed
// state of this one. The state is not validated until it is used: Apply reports
// StatsMissingError and a warm-started Fit reports StateMismatchError if it does not fit.
func (c *StatsContext) Rebind(w *Workflow) (*StatsContext, error) {
	rebound, err := NewStatsContext(w, c.conf)
	if err != nil {
		return nil, err
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	rebound.state = c.state
	rebound.fitID = c.fitID
	rebound.stats = c.stats
	return rebound, nil
}

// Workflow returns the Workflow this StatsContext fits statistics for
func (c *StatsContext) Workflow() *Workflow {
	return c.workflow
}

// StatesFor returns the fitted StatStates of an Op, in the order of its StatsRequired
func (c *StatsContext) StatesFor(opID string) ([]*tabular.StatState, bool) {
	if c == nil {
		return nil, false
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.state == nil {
		return nil, false
	}
	states, ok := c.state[opID]
	return states, ok
}

// IsFitted returns true iff a fitting pass has completed successfully
func (c *StatsContext) IsFitted() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.state != nil
}

// FitID returns the identifier of the most recent successful fitting pass
func (c *StatsContext) FitID() uuid.UUID {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.fitID
}

// Statistics returns statistics about the most recent successful fitting pass, or nil
func (c *StatsContext) Statistics() tabular.RuntimeStatistics {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.stats == nil {
		return nil
	}
	return c.stats
}

// Apply transforms a Batch in-place using this context's Workflow and statistics
func (c *StatsContext) Apply(b tabular.Batch) (tabular.Batch, error) {
	return c.workflow.Apply(b, c)
}

func (c *StatsContext) freshState() fitState {
	state := make(fitState)
	for _, st := range c.workflow.steps {
		for _, stat := range st.op.StatsRequired() {
			state[st.op.ID()] = append(state[st.op.ID()], tabular.NewStatState(stat, st.selected))
		}
	}
	return state
}

// initialState produces the state a pass starts from: a deep copy of the committed
// state for a warm start, if there is one, and fresh Accumulators otherwise
func (c *StatsContext) initialState(warmStart bool) (fitState, error) {
	c.lock.RLock()
	prior := c.state
	c.lock.RUnlock()
	if !warmStart || prior == nil {
		return c.freshState(), nil
	}
	state := make(fitState, len(prior))
	for _, st := range c.workflow.steps {
		required := st.op.StatsRequired()
		if len(required) == 0 {
			continue
		}
		id := st.op.ID()
		states, ok := prior[id]
		if !ok {
			return nil, errors.StateMismatchError{Op: id, Reason: "no fitted state exists for this op"}
		}
		if len(states) != len(required) {
			return nil, errors.StateMismatchError{Op: id, Reason: fmt.Sprintf("expected %d stats, found %d", len(required), len(states))}
		}
		cloned := make([]*tabular.StatState, len(states))
		for i, s := range states {
			if s.Stat().ID() != required[i].ID() {
				return nil, errors.StateMismatchError{Op: id, Reason: fmt.Sprintf("expected stat %s, found %s", required[i].ID(), s.Stat().ID())}
			}
			for _, col := range st.selected {
				if !s.HasColumn(col) {
					return nil, errors.StateMismatchError{Op: id, Reason: fmt.Sprintf("stat %s has no state for column %s", s.Stat().ID(), col)}
				}
			}
			cloned[i] = s.Clone()
		}
		state[id] = cloned
	}
	return state, nil
}

// fitBatch accumulates one Batch into state. Ops are visited in order: an Op with Stats
// accumulates its input columns and marks its outputs as materialized, since their
// values are unknown until the pass completes; an Op without Stats is applied to its
// unmaterialized columns, and propagates the mark from materialized inputs to outputs.
func (c *StatsContext) fitBatch(state fitState, b tabular.Batch) error {
	b = b.Clone()
	materialized := make(map[string]bool)
	for _, st := range c.workflow.steps {
		if len(st.op.StatsRequired()) > 0 {
			states := state[st.op.ID()]
			for _, col := range st.selected {
				if materialized[col] {
					return errors.StatsDependencyError{Op: st.op.ID(), Column: col}
				}
				values, err := b.GetColumn(col)
				if err != nil {
					return err
				}
				for _, s := range states {
					if err := util.SafeAccumulate(s, col, values); err != nil {
						return fmt.Errorf("Unable to fit op %s: %w", st.op.ID(), err)
					}
				}
			}
			for _, col := range st.selected {
				materialized[ops.OutputName(st.op, col)] = true
			}
			continue
		}
		available := make([]string, 0, len(st.selected))
		for _, col := range st.selected {
			if materialized[col] {
				materialized[ops.OutputName(st.op, col)] = true
			} else {
				available = append(available, col)
			}
		}
		if err := ops.ApplyColumns(st.op, b, available, nil); err != nil {
			return err
		}
	}
	return nil
}

func (c *StatsContext) commit(state fitState, fitID uuid.UUID, rs *istats.RunStatistics) {
	c.lock.Lock()
	c.state = state
	c.fitID = fitID
	c.stats = rs
	c.lock.Unlock()
	c.metrics.ObservePass(rs.GetRuntime().Seconds())
	c.conf.Logger.V(1).Info("fit pass complete",
		"fitID", fitID.String(),
		"batches", rs.GetNumBatchesProcessed(),
		"rows", rs.GetNumRowsProcessed(),
		"runtime", rs.GetRuntime().String(),
	)
}

// Fit computes the statistics of every Op in one sequential pass over a Dataset. With
// warmStart, accumulation continues from the committed state, which must match the
// Workflow. State is only committed if the whole pass succeeds.
func (c *StatsContext) Fit(ctx context.Context, dataset tabular.Dataset, warmStart bool) (err error) {
	if !c.fitLock.TryLock() {
		return errors.ConcurrentFitError{}
	}
	defer c.fitLock.Unlock()
	fitID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			c.conf.Logger.Error(err, "fit pass failed", "fitID", fitID.String())
		}
	}()
	state, err := c.initialState(warmStart)
	if err != nil {
		return err
	}
	c.conf.Logger.V(1).Info("starting fit pass", "fitID", fitID.String(), "warmStart", warmStart, "parallelism", 1)
	rs := &istats.RunStatistics{}
	rs.Start()
	iter, err := dataset.Batches()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tabular.CloseBatches(iter); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for iter.HasNextBatch() {
		if err = ctx.Err(); err != nil {
			return err
		}
		b, nerr := iter.NextBatch()
		if nerr != nil {
			return nerr
		}
		start := time.Now()
		if err = c.fitBatch(state, b); err != nil {
			return err
		}
		rs.EndBatch(start, b.NumRows())
		c.metrics.ObserveBatch(b.NumRows())
	}
	rs.Finish()
	c.commit(state, fitID, rs)
	return nil
}

// FitParallel computes the same statistics as Fit, but accumulates up to
// ContextConf.Parallelism Batches at once into independent partial states, which are
// merged into the pass state in Batch order.
func (c *StatsContext) FitParallel(ctx context.Context, dataset tabular.Dataset, warmStart bool) (err error) {
	if !c.fitLock.TryLock() {
		return errors.ConcurrentFitError{}
	}
	defer c.fitLock.Unlock()
	fitID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			c.conf.Logger.Error(err, "fit pass failed", "fitID", fitID.String())
		}
	}()
	state, err := c.initialState(warmStart)
	if err != nil {
		return err
	}
	c.conf.Logger.V(1).Info("starting fit pass", "fitID", fitID.String(), "warmStart", warmStart, "parallelism", c.conf.Parallelism)
	rs := &istats.RunStatistics{}
	rs.Start()
	iter, err := dataset.Batches()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tabular.CloseBatches(iter); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// each Batch holds a slot of sem from the time it is read until its partial state
	// has been merged, so at most Parallelism partial states exist at once
	sem := semaphore.NewWeighted(int64(c.conf.Parallelism))
	var mergeLock sync.Mutex
	pending := make(map[int]fitState)
	next := 0
	merge := func(idx int, partial fitState) error {
		mergeLock.Lock()
		defer mergeLock.Unlock()
		pending[idx] = partial
		for {
			p, ok := pending[next]
			if !ok {
				return nil
			}
			delete(pending, next)
			next++
			for id, states := range p {
				for i, s := range states {
					if err := state[id][i].Merge(s); err != nil {
						return err
					}
				}
			}
			sem.Release(1)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	var readErr error
	for idx := 0; iter.HasNextBatch(); idx++ {
		if readErr = sem.Acquire(gctx, 1); readErr != nil {
			break
		}
		b, nerr := iter.NextBatch()
		if nerr != nil {
			sem.Release(1)
			readErr = nerr
			break
		}
		idx := idx
		g.Go(func() error {
			start := time.Now()
			partial := c.freshState()
			if err := c.fitBatch(partial, b); err != nil {
				sem.Release(1)
				return err
			}
			rs.EndBatch(start, b.NumRows())
			c.metrics.ObserveBatch(b.NumRows())
			return merge(idx, partial)
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}
	if readErr != nil {
		return readErr
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	rs.Finish()
	c.commit(state, fitID, rs)
	return nil
}
