package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fallmatch/loop"
)

// history is a fixed-size ring of samples.
type history struct {
	samples []float32
	index   int
	filled  int
}

func newHistory(size int) history {
	return history{samples: make([]float32, size)}
}

func (h *history) push(v float32) {
	h.samples[h.index] = v
	h.index = (h.index + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// average covers only the samples pushed so far.
func (h *history) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:h.filled] {
		sum += v
	}
	return sum / float32(h.filled)
}

// PerformanceStats plots frame times and per-ticker timings of a Runner.
type PerformanceStats struct {
	runner *loop.Runner
	frames history
	ticks  history
	last   int64
}

func NewPerformanceStats(runner *loop.Runner, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		runner: runner,
		frames: newHistory(historyFrames),
		ticks:  newHistory(historyFrames),
	}
}

// Record adds one frame to the history. deltaTime is in seconds.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frames.push(deltaTime * 1000.0)

	ticks := ps.runner.Ticks()
	ps.ticks.push(float32(ticks - ps.last))
	ps.last = ticks
}

func (ps *PerformanceStats) Render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.runner.GetStats()

	avgFrameTime := ps.frames.average()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))
	imgui.Text(fmt.Sprintf("Avg Ticks/Frame: %.2f", ps.ticks.average()))
	imgui.Text(fmt.Sprintf("Clock Leftover: %.2f", ps.runner.Leftover()))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frames.samples[0], int32(len(ps.frames.samples)))
	imgui.Text("Ticks per Frame")
	imgui.PlotLinesFloatPtr("##ticks", &ps.ticks.samples[0], int32(len(ps.ticks.samples)))

	if imgui.TreeNodeStr("Ticker Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("TickerStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Ticker")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, ts := range stats.Tickers {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(ts.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", ts.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(ts.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(ts.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(ts.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
