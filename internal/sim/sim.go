// Package sim runs multicore scenarios against an emulated spinlock bank:
// goroutines stand in for cores and contend for one hwspin.Mutex.
package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/llxisdsh/hwspin"
	"github.com/llxisdsh/hwspin/internal/config"
	"github.com/llxisdsh/hwspin/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ErrDeadline is returned when a core in trylock mode does not get the lock
// before its deadline.
var ErrDeadline = errors.New("sim: lock not acquired before deadline")

// Report is the outcome of Run.
type Report struct {
	Lock    int           `json:"lock"`
	Mode    string        `json:"mode"`
	Cores   int           `json:"cores"`
	Final   int           `json:"final"`
	Want    int           `json:"want"`
	PerCore []int64       `json:"per_core"`
	Bank    hwspin.Stats  `json:"bank"`
	Elapsed time.Duration `json:"elapsed"`
}

// Acquisitions is the total number of successful acquisitions by all cores.
func (r *Report) Acquisitions() int64 {
	var n int64
	for _, c := range r.PerCore {
		n += c
	}
	return n
}

// Run has cfg.Cores cores each do cfg.Iterations lock/increment/unlock
// rounds on a counter protected by spinlock cfg.Lock of bank.
//
// A lost update shows up as Report.Final < Report.Want.
func Run(ctx context.Context, cfg config.SimConfig, bank *hwspin.SimBank, log *logging.Logger) (*Report, error) {
	c, err := NewCell(cfg.Lock, bank)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	log = log.WithLock(cfg.Lock)

	rep := &Report{
		Lock:    cfg.Lock,
		Mode:    cfg.Mode,
		Cores:   cfg.Cores,
		Want:    cfg.Cores * cfg.Iterations,
		PerCore: make([]int64, cfg.Cores),
	}
	start := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	for core := range cfg.Cores {
		eg.Go(func() error {
			clog := log.WithCore(core)
			for i := range cfg.Iterations {
				g, err := acquire(ctx, c, cfg)
				if err != nil {
					return fmt.Errorf("core %d, round %d: %w", core, i, err)
				}
				g.Store(g.Load() + 1)
				g.Unlock()
				rep.PerCore[core]++
			}
			clog.Debug("core done", "acquisitions", rep.PerCore[core])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g := c.Lock()
	rep.Final = g.Load()
	g.Unlock()
	rep.Elapsed = time.Since(start)
	rep.Bank = bank.Stats(cfg.Lock)

	log.Info("run finished",
		"final", rep.Final,
		"acquisitions", rep.Acquisitions(),
		"misses", rep.Bank.Misses,
		"elapsed", rep.Elapsed)
	if rep.Final != rep.Want {
		log.Error("lost updates", "final", rep.Final, "want", rep.Want)
	}
	return rep, nil
}

// acquire gets the lock the way cfg.Mode says. In trylock mode it is the
// caller-side bounded wait the Mutex itself does not offer.
func acquire(ctx context.Context, c Cell, cfg config.SimConfig) (Guard, error) {
	if cfg.Mode != config.ModeTryLock {
		return c.Lock(), nil
	}
	deadline := time.Now().Add(cfg.Deadline)
	for {
		if g, ok := c.TryLock(); ok {
			return g, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, ErrDeadline
		}
		runtime.Gosched()
	}
}

// ContendReport is the outcome of Contend.
type ContendReport struct {
	Lock int `json:"lock"`
	// Held is how long core 0 kept the lock.
	Held time.Duration `json:"held"`
	// Refused counts, per core, the TryLock calls that returned no guard.
	// Core 0 is the holder and never polls.
	Refused []int64 `json:"refused"`
	// Waited is, per core, the time from its first refusal to its grant.
	Waited []time.Duration `json:"waited"`
	Bank   hwspin.Stats    `json:"bank"`
}

// Contend checks the TryLock contract. Core 0 takes the lock and holds it for
// cfg.Hold while every other core polls TryLock. Each poll must be refused
// until the holder lets go, after which every core must get the lock.
func Contend(ctx context.Context, cfg config.SimConfig, bank *hwspin.SimBank, log *logging.Logger) (*ContendReport, error) {
	c, err := NewCell(cfg.Lock, bank)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	log = log.WithLock(cfg.Lock)

	rep := &ContendReport{
		Lock:    cfg.Lock,
		Refused: make([]int64, cfg.Cores),
		Waited:  make([]time.Duration, cfg.Cores),
	}

	held := make(chan struct{})
	var released atomic.Bool

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		g := c.Lock()
		start := time.Now()
		close(held)
		select {
		case <-time.After(cfg.Hold):
		case <-ctx.Done():
		}
		released.Store(true)
		rep.Held = time.Since(start)
		g.Unlock()
		log.WithCore(0).Debug("holder released", "held", rep.Held)
		return nil
	})
	for core := 1; core < cfg.Cores; core++ {
		eg.Go(func() error {
			<-held
			start := time.Now()
			deadline := start.Add(cfg.Hold + cfg.Deadline)
			for {
				g, ok := c.TryLock()
				if ok {
					wasReleased := released.Load()
					g.Unlock()
					if !wasReleased {
						return fmt.Errorf("core %d: TryLock granted while core 0 held the lock", core)
					}
					rep.Waited[core] = time.Since(start)
					return nil
				}
				rep.Refused[core]++
				if err := ctx.Err(); err != nil {
					return err
				}
				if time.Now().After(deadline) {
					return fmt.Errorf("core %d: %w", core, ErrDeadline)
				}
				runtime.Gosched()
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	rep.Bank = bank.Stats(cfg.Lock)
	log.Info("contend finished", "held", rep.Held, "refused", rep.Refused)
	return rep, nil
}
