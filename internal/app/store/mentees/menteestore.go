// internal/app/store/mentees/menteestore.go
package menteestore

import (
	"context"
	"strconv"

	"github.com/dalemusser/presensihub/internal/app/store/sheet"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

// TableName is the worksheet holding mentees.
const TableName = "mentee"

// Columns is the canonical header of the mentee worksheet.
var Columns = []string{"id", "nama", "kelompok", "mentor_id"}

type Store struct {
	rec *sheet.Records
}

func New(wb sheet.Workbook) *Store {
	return &Store{rec: sheet.NewRecords(wb, TableName, Columns)}
}

// List returns every mentee in worksheet order. mentor_id cells that are
// blank or not numeric decode as 0.
func (s *Store) List(ctx context.Context) ([]models.Mentee, error) {
	rs, err := s.rec.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Mentee, 0, len(rs.Data))
	for _, row := range rs.Data {
		out = append(out, models.Mentee{
			ID:       rs.Int(row, "id"),
			Nama:     rs.Cell(row, "nama"),
			Kelompok: rs.Cell(row, "kelompok"),
			MentorID: rs.Int(row, "mentor_id"),
		})
	}
	return out, nil
}

func (s *Store) NextID(ctx context.Context) (int, error) {
	return s.rec.NextID(ctx)
}

func (s *Store) Create(ctx context.Context, m models.Mentee) (models.Mentee, error) {
	id, err := s.rec.Create(ctx, func(id int) map[string]string {
		return fields(id, m)
	})
	if err != nil {
		return models.Mentee{}, err
	}
	m.ID = id
	return m, nil
}

// UpdateAt rewrites the mentee at position; m.ID is the expected id.
func (s *Store) UpdateAt(ctx context.Context, position int, m models.Mentee) error {
	return s.rec.UpdateAt(ctx, position, m.ID, fields(m.ID, m))
}

func (s *Store) DeleteAt(ctx context.Context, position, expectedID int) error {
	return s.rec.DeleteAt(ctx, position, expectedID)
}

// ForMentor filters mentees assigned to mentorID, keeping order.
func ForMentor(mentees []models.Mentee, mentorID int) []models.Mentee {
	var out []models.Mentee
	for _, m := range mentees {
		if m.MentorID == mentorID {
			out = append(out, m)
		}
	}
	return out
}

func fields(id int, m models.Mentee) map[string]string {
	return map[string]string{
		"id":        strconv.Itoa(id),
		"nama":      m.Nama,
		"kelompok":  m.Kelompok,
		"mentor_id": strconv.Itoa(m.MentorID),
	}
}
