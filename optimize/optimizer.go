package optimize

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rustyeddy/scalper/backtest"
	"github.com/rustyeddy/scalper/feed"
	"github.com/rustyeddy/scalper/market"
)

// Result pairs one parameter combination with its run and score. A failed
// combination carries Err and an -Inf score; it never wins the ranking and
// never aborts the rest of the search.
type Result struct {
	Params backtest.Params
	Run    backtest.Result
	Score  float64
	Err    error
}

// Score rewards return and penalizes drawdown. MaxDrawdown is negative or
// zero, so subtracting half of it raises the score of calm equity curves.
func Score(r backtest.Result) float64 {
	return r.ProfitPct - r.MaxDrawdown/2
}

// Optimizer runs one backtest per grid combination over a shared, read-only
// bar dataset. Results are retained in grid order regardless of Workers.
type Optimizer struct {
	// Grid to search; DefaultGrid() when zero.
	Grid Grid

	// Engine is the run template; Params and OnProgress are overridden per
	// combination.
	Engine backtest.Config

	// Bars is the dataset replayed by every combination.
	Bars []market.Bar

	// Workers > 1 runs combinations on a worker pool. Result ordering and
	// tie-breaking are identical to the sequential run.
	Workers int

	// OnProgress, if set, receives the percent of combinations completed,
	// invoked only on change, monotonically non-decreasing.
	OnProgress func(pct int)
}

// Run executes the search. Cancellation is checked between combinations; a
// canceled context returns the results completed so far along with ctx's
// error.
func (o *Optimizer) Run(ctx context.Context) ([]Result, error) {
	grid := o.Grid
	if grid.Size() == 0 {
		grid = DefaultGrid()
	}
	combos := grid.Combos()
	if len(combos) == 0 {
		return nil, fmt.Errorf("optimize: empty parameter grid")
	}

	if o.Workers > 1 {
		return o.runParallel(ctx, combos)
	}

	results := make([]Result, 0, len(combos))
	prog := newProgress(o.OnProgress, len(combos))
	for i, p := range combos {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, o.runOne(p))
		prog.step(i + 1)
	}
	return results, nil
}

// runParallel fans combinations out to a worker pool. Results are written to
// their combination's index, so ordering is deterministic. On cancellation
// the full slice is returned best-effort: entries that never ran carry a
// context error.
func (o *Optimizer) runParallel(ctx context.Context, combos []backtest.Params) ([]Result, error) {
	results := make([]Result, len(combos))
	jobs := make(chan int)

	var mu sync.Mutex
	done := 0
	prog := newProgress(o.OnProgress, len(combos))

	var wg sync.WaitGroup
	for w := 0; w < o.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = o.runOne(combos[i])

				mu.Lock()
				done++
				prog.step(done)
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i := range combos {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Params == (backtest.Params{}) && results[i].Err == nil {
				results[i] = Result{Params: combos[i], Score: math.Inf(-1), Err: err}
			}
		}
		return results, err
	}
	return results, nil
}

func (o *Optimizer) runOne(p backtest.Params) Result {
	cfg := o.Engine
	cfg.Params = p
	cfg.OnProgress = nil

	eng, err := backtest.NewEngine(cfg)
	if err != nil {
		return Result{Params: p, Score: math.Inf(-1), Err: err}
	}

	run, err := eng.Run(context.Background(), feed.FromBars(o.Bars))
	if err != nil {
		return Result{Params: p, Score: math.Inf(-1), Err: err}
	}

	return Result{Params: p, Run: run, Score: Score(run)}
}

// Best returns the highest-scoring successful result. Comparison is strict,
// so ties keep the first combination in grid order. ok is false when every
// combination failed or results is empty.
func Best(results []Result) (best Result, ok bool) {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !ok || r.Score > best.Score {
			best = r
			ok = true
		}
	}
	return best, ok
}

// TopN returns the n highest-scoring successful results, descending by score.
// The sort is stable over grid order, so equal scores rank in enumeration
// order.
func TopN(results []Result, n int) []Result {
	ranked := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

type progress struct {
	fn    func(int)
	total int
	last  int
}

func newProgress(fn func(int), total int) *progress {
	return &progress{fn: fn, total: total, last: -1}
}

func (p *progress) step(done int) {
	if p.fn == nil || p.total <= 0 {
		return
	}
	pct := done * 100 / p.total
	if pct != p.last {
		p.last = pct
		p.fn(pct)
	}
}
