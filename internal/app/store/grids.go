package store

import (
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
)

const kindGrid = "grid"

// SaveGrid creates a grid or merges the payload into an existing one.
// Requirements without an id receive one in both cases. Existing audits keep
// the findings they snapshotted.
func (s *Store) SaveGrid(ctx context.Context, cmd domain.Save[grid.Draft]) (_ *grid.Grid, err error) {
	ctx, done := s.begin(ctx, "SaveGrid", attribute.String("grid_id", cmd.ID()))
	defer func() { done(err) }()

	d := cmd.Payload
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := slices.Clone(d.Requirements)
	grid.AssignRequirementIDs(reqs, s.ids.NewID)

	var g *grid.Grid
	if cmd.IsUpdate() {
		g = s.grid(cmd.ID())
		if g == nil {
			return nil, domain.NotFound(kindGrid, cmd.ID())
		}
	} else {
		s.state.grids = append(s.state.grids, grid.Grid{ID: s.ids.NewID()})
		g = &s.state.grids[len(s.state.grids)-1]
	}
	g.Title = d.Title
	g.Scope = d.Scope
	g.Description = d.Description
	g.Requirements = reqs

	s.log(ctx).InfoContext(ctx, "grid saved",
		slog.String("grid_id", g.ID),
		slog.Bool("update", cmd.IsUpdate()),
		slog.Int("requirements", len(reqs)),
	)
	out := cloneGrid(*g)
	return &out, nil
}

// DeleteGrid removes a grid. A grid referenced by any audit is left in place
// and a *domain.RejectionError explains why.
func (s *Store) DeleteGrid(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "DeleteGrid", attribute.String("grid_id", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.state.grids, func(g grid.Grid) bool { return g.ID == id })
	if i < 0 {
		return domain.NotFound(kindGrid, id)
	}
	if slices.ContainsFunc(s.state.audits, func(a audit.Audit) bool { return a.GridID == id }) {
		return domain.Reject(grid.InUseReason)
	}
	s.state.grids = slices.Delete(s.state.grids, i, i+1)

	s.log(ctx).InfoContext(ctx, "grid deleted", slog.String("grid_id", id))
	return nil
}

// ListGrids returns every grid in creation order.
func (s *Store) ListGrids(_ context.Context) []grid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.state.grids, cloneGrid)
}

// GetGrid returns the grid with the given id.
func (s *Store) GetGrid(_ context.Context, id string) (*grid.Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.grid(id)
	if g == nil {
		return nil, domain.NotFound(kindGrid, id)
	}
	out := cloneGrid(*g)
	return &out, nil
}

func (s *Store) grid(id string) *grid.Grid {
	i := slices.IndexFunc(s.state.grids, func(g grid.Grid) bool { return g.ID == id })
	if i < 0 {
		return nil
	}
	return &s.state.grids[i]
}
