// internal/app/features/dashboard/mentor.go
package dashboard

import (
	"strconv"
	"strings"

	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/app/system/stats"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

type mentorDashboardData struct {
	baseDashboardData

	MentorID     int
	MenteeCount  int
	MeetingCount int

	Mentees        []models.Mentee
	SelectedMentee int
	SelectedName   string
	History        []stats.DetailRow
	HistoryNotice  string

	Alfa       []stats.AlfaCount
	AlfaNotice string
}

// buildMentor computes the mentor dashboard. scope must carry the mentor's
// id; nothing outside that group is read. menteeParam selects the
// individual history section and is ignored unless it names a mentee of
// this mentor.
func buildMentor(snap reportqueries.Snapshot, scope stats.Scope, menteeParam string) mentorDashboardData {
	f := snap.Scoped(scope)

	d := mentorDashboardData{
		MenteeCount:  len(f.Mentees),
		MeetingCount: stats.DistinctMeetings(f.Records),
		Mentees:      f.Mentees,
	}

	rows := stats.Details(f.Records, f.Mentees, nil)
	d.Rows = rows

	if len(f.Records) == 0 {
		d.Notice = msgNoGroupRecords
	} else {
		d.Meetings = meetingRates(stats.AttendanceRateByMeeting(f.Records))
		d.Distribution = stats.OrderedDistribution(stats.StatusDistribution(f.Records))
		d.Alfa = stats.AlfaRanking(f.Records, f.Mentees)
		if len(d.Alfa) == 0 {
			d.AlfaNotice = msgPerfectGroup
		}
	}

	switch id, _ := strconv.Atoi(strings.TrimSpace(menteeParam)); {
	case len(f.Mentees) == 0:
		d.HistoryNotice = msgNoMentees
	case id == 0:
		d.HistoryNotice = msgPickMentee
	default:
		for _, m := range f.Mentees {
			if m.ID != id {
				continue
			}
			d.SelectedMentee = m.ID
			d.SelectedName = m.Nama
			d.History = stats.History(rows, m.ID)
			if len(d.History) == 0 {
				d.HistoryNotice = "Belum ada data presensi untuk " + m.Nama + " dalam rentang tanggal ini."
			}
		}
		if d.SelectedMentee == 0 {
			d.HistoryNotice = msgPickMentee
		}
	}
	return d
}
