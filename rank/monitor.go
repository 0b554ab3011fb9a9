package rank

import "github.com/poiesic/askit/core"

// RankMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate scores during ranking.
type RankMonitor interface {
	Start(rawQuery string)
	DocumentScored(id core.ID, score float64, breakdown core.ScoreBreakdown)
	Filtered(kept, scored int)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                         {}
func (n *noopMonitor) DocumentScored(_ core.ID, _ float64, _ core.ScoreBreakdown) {}
func (n *noopMonitor) Filtered(_, _ int)                                      {}
func (n *noopMonitor) Finish(_ []core.RankedResult)                           {}
