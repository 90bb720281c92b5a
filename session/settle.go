package session

import "go.uber.org/zap"

// updateSettle runs one settle pass every SettleInterval ticks: gravity first,
// and only once nothing falls, match clearing. A pass that clears nothing ends
// the settle phase.
func (s *Session) updateSettle() {
	s.settleCounter++
	if s.settleCounter%s.cfg.SettleInterval != 0 {
		return
	}

	if s.board.DropDanglingCells() {
		s.stats.GravityPasses++
		return
	}

	groups := s.board.CellsToClear()
	if len(groups) == 0 {
		s.settleCounter = 0
		s.setState(Releasing)
		return
	}

	// A cell in both a row and a column run is deleted and tallied once.
	s.cleared.Clear()
	cleared, targets := 0, 0
	for _, g := range groups {
		for _, p := range g {
			if !s.cleared.Add(p.Row*s.cfg.Cols + p.Col) {
				continue
			}
			old := s.board.Delete(true, p.Row, p.Col)
			cleared++
			if old.IsTarget() {
				s.tally.Remove(old.Type())
				targets++
			}
		}
	}

	s.stats.Cascades++
	s.stats.CellsCleared += cleared
	s.stats.TargetsCleared += targets

	s.log.Debug("settle pass",
		zap.Int("groups", len(groups)),
		zap.Int("cleared", cleared),
		zap.Int("targets_left", s.tally.Total()),
		zap.Int("tick", s.tick),
	)

	if s.tally.Total() == 0 {
		s.setState(DoneWon)
	}
}
