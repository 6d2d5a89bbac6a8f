// internal/app/store/mentors/mentorstore.go
package mentorstore

import (
	"context"
	"strconv"

	"github.com/dalemusser/presensihub/internal/app/store/sheet"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

// TableName is the worksheet holding mentors.
const TableName = "mentor"

// Columns is the canonical header of the mentor worksheet.
var Columns = []string{"id", "nama", "email"}

type Store struct {
	rec *sheet.Records
}

func New(wb sheet.Workbook) *Store {
	return &Store{rec: sheet.NewRecords(wb, TableName, Columns)}
}

// List returns every mentor in worksheet order; a mentor's index in the
// slice is its row position.
func (s *Store) List(ctx context.Context) ([]models.Mentor, error) {
	rs, err := s.rec.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Mentor, 0, len(rs.Data))
	for _, row := range rs.Data {
		out = append(out, models.Mentor{
			ID:    rs.Int(row, "id"),
			Nama:  rs.Cell(row, "nama"),
			Email: rs.Cell(row, "email"),
		})
	}
	return out, nil
}

func (s *Store) NextID(ctx context.Context) (int, error) {
	return s.rec.NextID(ctx)
}

// Create appends m with the next free id and returns it with ID set.
func (s *Store) Create(ctx context.Context, m models.Mentor) (models.Mentor, error) {
	id, err := s.rec.Create(ctx, func(id int) map[string]string {
		return fields(id, m)
	})
	if err != nil {
		return models.Mentor{}, err
	}
	m.ID = id
	return m, nil
}

// UpdateAt rewrites nama and email of the mentor at position. m.ID must be
// the id the caller saw at that position; ids never change.
func (s *Store) UpdateAt(ctx context.Context, position int, m models.Mentor) error {
	return s.rec.UpdateAt(ctx, position, m.ID, fields(m.ID, m))
}

// DeleteAt removes the mentor at position if it still has expectedID.
// Mentees pointing at it are left dangling.
func (s *Store) DeleteAt(ctx context.Context, position, expectedID int) error {
	return s.rec.DeleteAt(ctx, position, expectedID)
}

// FindByEmail returns the mentors whose email equals email exactly, in
// worksheet order.
func FindByEmail(mentors []models.Mentor, email string) []models.Mentor {
	var out []models.Mentor
	for _, m := range mentors {
		if m.Email == email {
			out = append(out, m)
		}
	}
	return out
}

func fields(id int, m models.Mentor) map[string]string {
	return map[string]string{
		"id":    strconv.Itoa(id),
		"nama":  m.Nama,
		"email": m.Email,
	}
}
