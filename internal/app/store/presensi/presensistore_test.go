package presensistore_test

import (
	"errors"
	"testing"

	presensistore "github.com/dalemusser/presensihub/internal/app/store/presensi"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/presensihub/internal/testutil"
)

func TestCreateBatch_AssignsSequentialIDs(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, testutil.NewWorkbook(t))
	fx.CreateAttendance(ctx, 1, "2024-03-01", 1, models.StatusHadir)

	batch := []models.Attendance{
		{MenteeID: 1, Tanggal: "2024-03-08", Pertemuan: 2, Status: models.StatusHadir},
		{MenteeID: 2, Tanggal: "2024-03-08", Pertemuan: 2, Status: models.StatusAlfa},
	}
	got, err := fx.Presensi.CreateBatch(ctx, batch)
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("ids = %d,%d, want 2,3", got[0].ID, got[1].ID)
	}

	list, _ := fx.Presensi.List(ctx)
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[2] != got[1] {
		t.Errorf("last = %+v, want %+v", list[2], got[1])
	}
}

func TestList_LegacyColumns(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	wb := testutil.NewWorkbook(t)
	wb.Seed(presensistore.TableName,
		[]string{"id", "mentee_id", "mentor_id", "nama_mentor", "tanggal", "pertemuan", "status_kehadiran"},
		[]string{"1", "4", "2", "Budi", "2024-02-01", "1.0", "Izin"},
	)

	list, err := presensistore.New(wb).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := models.Attendance{ID: 1, MenteeID: 4, Tanggal: "2024-02-01", Pertemuan: 1, Status: "Izin"}
	if len(list) != 1 || list[0] != want {
		t.Errorf("List = %+v, want [%+v]", list, want)
	}

	// appends follow the worksheet's own header order
	if _, err := presensistore.New(wb).Create(ctx, models.Attendance{MenteeID: 5, Tanggal: "2024-02-08", Pertemuan: 2, Status: "Hadir"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, _ = presensistore.New(wb).List(ctx)
	if list[1].Status != "Hadir" || list[1].Tanggal != "2024-02-08" {
		t.Errorf("appended = %+v", list[1])
	}
}

func TestCreateBatch_Failure(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	wb := testutil.NewWorkbook(t)
	wb.Err = errors.New("quota exceeded")

	_, err := presensistore.New(wb).CreateBatch(ctx, []models.Attendance{{MenteeID: 1}})
	if err == nil {
		t.Fatal("CreateBatch on failing backend returned nil error")
	}
}
