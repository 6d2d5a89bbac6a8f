// internal/app/features/dashboard/common.go
package dashboard

import (
	"sort"

	"github.com/dalemusser/presensihub/internal/app/system/stats"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
)

// Messages shown when a section has nothing to draw.
const (
	msgNoRecordsInWindow = "Maaf, tidak ada data presensi yang ditemukan dalam rentang tanggal yang dipilih. Coba rentang tanggal lain atau pastikan data telah dicatat."
	msgNoMentorData      = "Data tidak cukup untuk menampilkan performa mentor."
	msgNoGroupRecords    = "Belum ada data presensi untuk kelompok Anda."
	msgNoMentees         = "Belum ada mentee yang terdaftar di kelompok Anda."
	msgPickMentee        = "Pilih nama mentee dari daftar di atas untuk melihat detail kehadirannya."
	msgPerfectGroup      = "Semua mentee dalam kelompok Anda hadir sempurna!"
)

// baseDashboardData contains fields common to both dashboard views.
type baseDashboardData struct {
	viewdata.BaseVM

	From, To string
	Notice   string

	Meetings     []meetingRate
	Distribution []stats.StatusCount
	Rows         []stats.DetailRow
}

// meetingRate is one bar of the per-pertemuan chart.
type meetingRate struct {
	Pertemuan int
	Rate      float64
}

func meetingRates(rates map[int]float64) []meetingRate {
	out := make([]meetingRate, 0, len(rates))
	for p, v := range rates {
		out = append(out, meetingRate{Pertemuan: p, Rate: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pertemuan < out[j].Pertemuan })
	return out
}
