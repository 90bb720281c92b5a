package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
	"github.com/plus3/fallmatch/loop"
	"github.com/plus3/fallmatch/session"
)

// SessionInspector shows the live state of a session and the runner that
// drives it, with pause, single-step and restart controls.
type SessionInspector struct {
	session func() *session.Session
	runner  *loop.Runner
	restart func(level int)

	level    int32
	showGrid bool
}

// NewSessionInspector inspects whatever session current returns, so hosts may
// swap sessions on restart. restart is called with the level picked in the
// window.
func NewSessionInspector(current func() *session.Session, runner *loop.Runner, restart func(level int)) *SessionInspector {
	return &SessionInspector{
		session:  current,
		runner:   runner,
		restart:  restart,
		level:    int32(current().Level()),
		showGrid: true,
	}
}

func (si *SessionInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 480), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	si.renderControls()
	imgui.Separator()

	s := si.session()
	imgui.Text(fmt.Sprintf("State: %s", s.State()))
	imgui.Text(fmt.Sprintf("Tick: %d", s.Tick()))
	imgui.Text(fmt.Sprintf("Level: %d", s.Level()))
	imgui.Text(fmt.Sprintf("Next: %s", pairText(s.Next())))

	if p, ok := s.Active(); ok {
		imgui.Text(fmt.Sprintf("Active: %s", placementText(p)))
	} else {
		imgui.Text("Active: none")
	}

	release, drop, settle := s.Counters()
	imgui.Text(fmt.Sprintf("Counters: release %d  drop %d  settle %d", release, drop, settle))

	if imgui.TreeNodeStr("Targets") {
		tally := s.Tally()
		for _, t := range cell.Types {
			imgui.BulletText(fmt.Sprintf("%s: %d", t, tally.Count(t)))
		}
		imgui.BulletText(fmt.Sprintf("total: %d", tally.Total()))
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Stats") {
		st := s.Stats()
		imgui.BulletText(fmt.Sprintf("pieces placed: %d", st.PiecesPlaced))
		imgui.BulletText(fmt.Sprintf("cells cleared: %d", st.CellsCleared))
		imgui.BulletText(fmt.Sprintf("targets cleared: %d", st.TargetsCleared))
		imgui.BulletText(fmt.Sprintf("cascades: %d", st.Cascades))
		imgui.BulletText(fmt.Sprintf("gravity passes: %d", st.GravityPasses))
		imgui.TreePop()
	}

	imgui.Checkbox("Show Grid", &si.showGrid)
	if si.showGrid {
		si.renderGrid(s)
	}

	imgui.End()
}

func (si *SessionInspector) renderControls() {
	paused := si.runner.Paused()
	if imgui.Checkbox("Paused", &paused) {
		si.runner.SetPaused(paused)
	}
	imgui.SameLine()
	if imgui.Button("Step") && si.runner.Paused() {
		si.runner.Step()
	}

	imgui.SetNextItemWidth(100)
	if imgui.InputInt("##level", &si.level) {
		si.level = int32(session.ClampLevel(int(si.level)))
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		si.restart(int(si.level))
	}
}

func (si *SessionInspector) renderGrid(s *session.Session) {
	b := s.Board()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("BoardGrid", int32(b.Cols()), tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	active := map[board.Pos]cell.Cell{}
	if p, ok := s.Active(); ok {
		for _, pc := range p.Cells {
			active[board.Pos{Row: pc.Row, Col: pc.Col}] = pc.Cell
		}
	}

	for row := b.TopRow(); row >= 0; row-- {
		imgui.TableNextRow()
		for col := 0; col < b.Cols(); col++ {
			imgui.TableNextColumn()
			if c, ok := active[board.Pos{Row: row, Col: col}]; ok {
				imgui.Text("[" + c.String() + "]")
				continue
			}
			imgui.Text(b.Get(row, col).String())
		}
	}

	imgui.EndTable()
}

func pairText(pair [2]cell.Cell) string {
	return pair[0].String() + " " + pair[1].String()
}

func placementText(p session.ActivePlacement) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d,%d) rot %d:", p.Row, p.Col, p.Rotation)
	for _, pc := range p.Cells {
		fmt.Fprintf(&sb, " %s@(%d,%d)", pc.Cell, pc.Row, pc.Col)
	}
	return sb.String()
}
