package main

import (
	"io"
	"runtime"
	"strconv"
	"text/template"
	"time"

	"github.com/plus3/fallmatch/loop"
)

type Report struct {
	// Configuration
	RunID    string
	Seed     uint64
	Level    int
	Sessions int
	Workers  int
	MaxTicks int
	Duration time.Duration

	// Results
	Played         int
	Outcomes       [numOutcomes]int
	TotalTime      time.Duration
	TotalTicks     int64
	PiecesPlaced   int
	CellsCleared   int
	TargetsCleared int
	Cascades       int
	SessionTime    Stats
	SessionTicks   Stats
	Tickers        []TickerTotals
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// TickerTotals sums one named ticker across every session.
type TickerTotals struct {
	Name  string
	Runs  int64
	Total time.Duration
	Max   time.Duration
}

func (t TickerTotals) Avg() time.Duration {
	if t.Runs == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Runs)
}

// Add folds one session result into the report.
func (r *Report) Add(res result) {
	r.Played++
	r.Outcomes[res.outcome]++
	r.TotalTicks += int64(res.ticks)
	r.PiecesPlaced += res.stats.PiecesPlaced
	r.CellsCleared += res.stats.CellsCleared
	r.TargetsCleared += res.stats.TargetsCleared
	r.Cascades += res.stats.Cascades
	r.SessionTime.Samples = append(r.SessionTime.Samples, res.elapsed)
	// Tick counts reuse Stats; a tick is recorded as one nanosecond.
	r.SessionTicks.Samples = append(r.SessionTicks.Samples, time.Duration(res.ticks))
	r.addTickers(res.tickers)
}

func (r *Report) addTickers(stats []loop.TickerStats) {
	for _, ts := range stats {
		i := 0
		for i < len(r.Tickers) && r.Tickers[i].Name != ts.Name {
			i++
		}
		if i == len(r.Tickers) {
			r.Tickers = append(r.Tickers, TickerTotals{Name: ts.Name})
		}
		t := &r.Tickers[i]
		t.Runs += ts.ExecutionCount
		t.Total += ts.TotalDuration
		t.Max = max(t.Max, ts.MaxDuration)
	}
}

func (r *Report) Finalize() {
	r.SessionTime.Finalize()
	r.SessionTicks.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Soak Report {{.RunID}}

## Configuration
- **Seed:** {{.Seed}}
- **Level:** {{.Level}}
- **Sessions:** {{.Sessions}} on {{.Workers}} workers
- **Tick Limit:** {{.MaxTicks}}
- **Time Limit:** {{.Duration}}

## Outcomes
- **Played:** {{.Played}}
- **Won:** {{index .Outcomes 0}} ({{pct (index .Outcomes 0) .Played}})
- **Lost:** {{index .Outcomes 1}} ({{pct (index .Outcomes 1) .Played}})
- **Timed Out:** {{index .Outcomes 2}} ({{pct (index .Outcomes 2) .Played}})

## Play
- **Total Ticks:** {{.TotalTicks}}
- **Ticks per Session:** avg {{.SessionTicks.Avg | ticks}}, min {{.SessionTicks.Min | ticks}}, max {{.SessionTicks.Max | ticks}}
- **Pieces Placed:** {{.PiecesPlaced}}
- **Cells Cleared:** {{.CellsCleared}}
- **Targets Cleared:** {{.TargetsCleared}}
- **Cascade Steps:** {{.Cascades}}

## Performance
- **Total Time:** {{.TotalTime}}
- **Session Time:**
  - **Avg:** {{.SessionTime.Avg}}
  - **Min:** {{.SessionTime.Min}}
  - **Max:** {{.SessionTime.Max}}
{{range .Tickers}}- **{{.Name}}:** {{.Runs}} runs, avg {{.Avg}}, max {{.Max}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"pct": func(n, of int) string {
			if of == 0 {
				return "-"
			}
			return strconv.FormatFloat(100*float64(n)/float64(of), 'f', 1, 64) + "%"
		},
		"ticks": func(d time.Duration) int64 {
			return int64(d)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
