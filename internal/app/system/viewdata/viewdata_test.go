package viewdata_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/presensihub/internal/testutil"
)

func TestNewBaseVM_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/login", nil)
	vm := viewdata.NewBaseVM(r, "Masuk", "/")

	if vm.IsLoggedIn || vm.IsAdmin() || vm.IsMentor() {
		t.Errorf("anonymous VM reports a user: %+v", vm)
	}
	if vm.SiteName != models.DefaultSiteName || vm.Title != "Masuk" {
		t.Errorf("unexpected VM %+v", vm)
	}
}

func TestNewBaseVM_Mentor(t *testing.T) {
	r := testutil.AsUser(httptest.NewRequest("GET", "/presensi", nil), testutil.MentorUser(2, "Dedi", "d@x.com"))
	vm := viewdata.NewBaseVM(r, "Presensi", "/")

	if !vm.IsMentor() || vm.IsAdmin() || vm.UserName != "Dedi" {
		t.Errorf("unexpected VM %+v", vm)
	}

	vm.SetError("Gagal")
	if vm.Error != "Gagal" {
		t.Errorf("Error = %q", vm.Error)
	}
}
