// internal/app/store/presensi/presensistore.go
package presensistore

import (
	"context"
	"strconv"

	"github.com/dalemusser/presensihub/internal/app/store/sheet"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

// TableName is the worksheet holding attendance records.
const TableName = "presensi"

// Columns is the canonical header of the presensi worksheet.
var Columns = []string{"id", "mentee_id", "tanggal", "pertemuan", "status_kehadiran"}

// Store reads and appends attendance records. Records are append-only; there
// is no update or delete.
type Store struct {
	rec *sheet.Records
}

func New(wb sheet.Workbook) *Store {
	return &Store{rec: sheet.NewRecords(wb, TableName, Columns)}
}

// List returns every attendance record in worksheet order.
func (s *Store) List(ctx context.Context) ([]models.Attendance, error) {
	rs, err := s.rec.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Attendance, 0, len(rs.Data))
	for _, row := range rs.Data {
		out = append(out, models.Attendance{
			ID:        rs.Int(row, "id"),
			MenteeID:  rs.Int(row, "mentee_id"),
			Tanggal:   rs.Cell(row, "tanggal"),
			Pertemuan: rs.Int(row, "pertemuan"),
			Status:    rs.Cell(row, "status_kehadiran"),
		})
	}
	return out, nil
}

func (s *Store) NextID(ctx context.Context) (int, error) {
	return s.rec.NextID(ctx)
}

func (s *Store) Create(ctx context.Context, a models.Attendance) (models.Attendance, error) {
	id, err := s.rec.Create(ctx, func(id int) map[string]string {
		return fields(id, a)
	})
	if err != nil {
		return models.Attendance{}, err
	}
	a.ID = id
	return a, nil
}

// CreateBatch appends one record per element of batch, each with its own id.
// A failed row does not stop the others; the returned slice has ID set on
// every record that was written and ID 0 on those that were not.
func (s *Store) CreateBatch(ctx context.Context, batch []models.Attendance) ([]models.Attendance, error) {
	ids, err := s.rec.CreateMany(ctx, len(batch), func(i, id int) map[string]string {
		return fields(id, batch[i])
	})
	out := make([]models.Attendance, len(batch))
	copy(out, batch)
	for i := range out {
		out[i].ID = 0
		if i < len(ids) {
			out[i].ID = ids[i]
		}
	}
	return out, err
}

func fields(id int, a models.Attendance) map[string]string {
	return map[string]string{
		"id":               strconv.Itoa(id),
		"mentee_id":        strconv.Itoa(a.MenteeID),
		"tanggal":          a.Tanggal,
		"pertemuan":        strconv.Itoa(a.Pertemuan),
		"status_kehadiran": a.Status,
	}
}
