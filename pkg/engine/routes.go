package engine

import (
	"context"
	"time"

	"github.com/safesphere/saferoute/pkg/logging"
	"github.com/safesphere/saferoute/pkg/route"
)

// SafestPath computes the minimum-risk path between two nodes on the
// current snapshot. The search runs under the configured query deadline.
func (e *Engine) SafestPath(ctx context.Context, from, to string) (route.Path, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.cfg.QueryDeadline)
	defer cancel()

	pf := e.pathFinder()
	p, err := pf.SafestPath(ctx, from, to)
	e.observe("safest_path", start, err)
	if err != nil {
		e.logger.Debug("safest path failed",
			logging.String("from", from),
			logging.String("to", to),
			logging.Error(err))
		return route.Path{}, err
	}

	e.logger.Debug("safest path found",
		logging.String("from", from),
		logging.String("to", to),
		logging.Int("hops", p.Hops()),
		logging.Risk(p.TotalRisk))
	return p, nil
}

// Alternatives computes up to k distinct low-risk paths between two nodes,
// sorted from safest to riskiest.
func (e *Engine) Alternatives(ctx context.Context, from, to string, k int) ([]route.Path, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.cfg.QueryDeadline)
	defer cancel()

	pf := e.pathFinder()
	paths, err := pf.KSafestPaths(ctx, from, to, k)
	e.observe("alternatives", start, err)
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.RecordPathsFound("alternatives", len(paths))
	}
	return paths, nil
}

// AnalyzePath computes the segment-level risk analysis for a node sequence.
func (e *Engine) AnalyzePath(nodeIDs []string) (route.RouteAnalysis, error) {
	snap := e.handle.Current()
	p, err := route.BuildPath(snap, e.cost, nodeIDs)
	if err != nil {
		return route.RouteAnalysis{}, err
	}
	return route.AnalyzeRoute(p)
}

// SummarizePath builds a node sequence into a path and produces its summary,
// including a travel time estimate at the given base speed.
func (e *Engine) SummarizePath(nodeIDs []string, baseSpeed float64) (route.RouteSummary, error) {
	snap := e.handle.Current()
	p, err := route.BuildPath(snap, e.cost, nodeIDs)
	if err != nil {
		return route.RouteSummary{}, err
	}
	return route.Summarize(p, baseSpeed)
}

// Reachable reports whether end can be reached from start using only edges
// below the risk ceiling.
func (e *Engine) Reachable(from, to string, maxRisk float64) (bool, error) {
	return e.pathFinder().IsReachable(from, to, maxRisk)
}

// ReachableNodes returns the nodes reachable from start within maxHops using
// only edges below the risk ceiling.
func (e *Engine) ReachableNodes(start string, maxRisk float64, maxHops int) (map[string]route.ReachInfo, error) {
	return e.pathFinder().ReachableNodes(start, maxRisk, maxHops)
}

// Bottlenecks lists graph elements at or above the risk threshold.
func (e *Engine) Bottlenecks(threshold float64) []route.Bottleneck {
	return e.pathFinder().Bottlenecks(threshold)
}

func (e *Engine) pathFinder() *route.PathFinder {
	pf := route.NewPathFinder(e.handle.Current(), e.cost)
	pf.SetMaxIterations(e.cfg.MaxIterations)
	return pf
}
