// Package reportqueries loads the tables the report pages read and scopes
// them to the caller.
package reportqueries

import (
	"context"

	"github.com/dalemusser/presensihub/internal/app/system/stats"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

type MentorLister interface {
	List(ctx context.Context) ([]models.Mentor, error)
}

type MenteeLister interface {
	List(ctx context.Context) ([]models.Mentee, error)
}

type AttendanceLister interface {
	List(ctx context.Context) ([]models.Attendance, error)
}

// Sources bundles the three record stores.
type Sources struct {
	Mentors  MentorLister
	Mentees  MenteeLister
	Presensi AttendanceLister
}

// Snapshot is one consistent-enough read of all three tables. The reads
// are not transactional; a concurrent writer may land between them.
type Snapshot struct {
	Mentors []models.Mentor
	Mentees []models.Mentee
	Records []models.Attendance
}

// Load reads the three tables concurrently. The first error cancels the
// other reads and is returned unchanged.
func Load(ctx context.Context, src Sources) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Mentors, err = src.Mentors.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Mentees, err = src.Mentees.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Records, err = src.Presensi.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// MentorNames maps mentor id to name with models.MentorNames.
func (s Snapshot) MentorNames() map[int]string {
	return models.MentorNames(s.Mentors)
}

// Scoped applies stats.Restrict to the snapshot.
func (s Snapshot) Scoped(scope stats.Scope) stats.Filtered {
	return stats.Restrict(scope, s.Mentees, s.Records)
}

// Mentee returns the mentee with id, if present.
func (s Snapshot) Mentee(id int) (models.Mentee, bool) {
	for _, m := range s.Mentees {
		if m.ID == id {
			return m, true
		}
	}
	return models.Mentee{}, false
}
