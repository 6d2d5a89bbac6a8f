// internal/app/features/statistik/view.go
package statistik

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/app/system/stats"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

const (
	allMentors = "Semua Mentor"

	msgNoGroup         = "Belum ada mentee dalam kelompok Anda untuk ditampilkan statistiknya."
	msgNoFilterDataFmt = "Tidak ada data mentee atau presensi yang tersedia untuk kriteria filter yang dipilih (%s)."
	msgNoRecords       = "Tidak ada data presensi yang tersedia untuk membuat statistik."
	msgUnknownMentor   = "Mentor tidak ditemukan dalam data master."
)

type mentorOption struct {
	ID       int
	Nama     string
	Selected bool
}

type statistikData struct {
	viewdata.BaseVM

	Admin         bool
	MentorFilter  int
	MentorOptions []mentorOption
	FilterWarning string

	// Notice replaces every section when there is nothing to show.
	Notice string

	TotalRecords int
	TotalHadir   int
	Distribution []stats.StatusCount
	Meetings     []stats.MeetingStatus
	Statuses     []string
	Recap        []stats.PersonSummary
	ExportURL    string
}

// view is the scoped data shared by the page and the export.
type view struct {
	filtered stats.Filtered
	names    map[int]string
	admin    bool
	filter   int
	label    string
	warning  string
}

// scopeFor resolves who sees what. A mentor always sees their own group;
// an admin sees all mentors or the one picked with ?mentor=<id>. An unknown
// id falls back to all mentors with a warning.
func scopeFor(snap reportqueries.Snapshot, role string, mentorID int, mentorParam string) view {
	v := view{names: snap.MentorNames(), label: allMentors}
	scope := stats.Scope{Role: role}

	switch role {
	case models.RoleMentor:
		scope.MentorID = mentorID
	case models.RoleAdmin:
		v.admin = true
		if id, err := strconv.Atoi(mentorParam); err == nil && id > 0 {
			if _, ok := v.names[id]; ok {
				scope.MentorID = id
				v.filter = id
				v.label = models.MentorName(v.names, id)
			} else {
				v.warning = msgUnknownMentor
			}
		}
	}
	v.filtered = snap.Scoped(scope)
	return v
}

// recap zero-fills every scoped mentee. The mentor column is only filled
// for admins.
func (v view) recap() []stats.PersonSummary {
	var names map[int]string
	if v.admin {
		names = v.names
	}
	return stats.PerPersonSummary(v.filtered.Records, v.filtered.Mentees, names)
}

func mentorOptions(mentors []models.Mentor, selected int) []mentorOption {
	out := make([]mentorOption, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, mentorOption{ID: m.ID, Nama: m.Nama, Selected: m.ID == selected})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nama < out[j].Nama })
	return out
}

// notice returns the message that replaces the page body, or "".
func (v view) notice() string {
	switch {
	case !v.admin && len(v.filtered.Mentees) == 0:
		return msgNoGroup
	case v.admin && (len(v.filtered.Mentees) == 0 || len(v.filtered.Records) == 0):
		return fmt.Sprintf(msgNoFilterDataFmt, v.label)
	case len(v.filtered.Records) == 0:
		return msgNoRecords
	}
	return ""
}

func build(snap reportqueries.Snapshot, v view) statistikData {
	data := statistikData{
		Admin:         v.admin,
		MentorFilter:  v.filter,
		FilterWarning: v.warning,
		Statuses:      models.Statuses,
	}
	if v.admin {
		data.MentorOptions = mentorOptions(snap.Mentors, v.filter)
	}
	if data.Notice = v.notice(); data.Notice != "" {
		return data
	}

	recs := v.filtered.Records
	data.TotalRecords = len(recs)
	data.TotalHadir = stats.HadirTotal(recs)
	data.Distribution = stats.OrderedDistribution(stats.StatusDistribution(recs))
	data.Meetings = stats.StatusByMeeting(recs)
	data.Recap = v.recap()
	data.ExportURL = exportURL(v.filter)
	return data
}

func exportURL(filter int) string {
	if filter == 0 {
		return "/statistik/rekap.xlsx"
	}
	return "/statistik/rekap.xlsx?mentor=" + strconv.Itoa(filter)
}
