// internal/app/features/dashboard/admin.go
package dashboard

import (
	"strings"

	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/app/system/stats"
)

type adminDashboardData struct {
	baseDashboardData

	TotalMentors int
	TotalMentees int
	TotalRecords int
	HadirRate    float64

	Weekly  []stats.TrendPoint
	Monthly []stats.TrendPoint

	TopMentors    []stats.MentorRate
	BottomMentors []stats.MentorRate
	MentorNotice  string

	Search string
}

const rankSize = 5

// buildAdmin computes every section of the admin dashboard. Totals for
// mentors and mentees are unfiltered; everything else follows the window.
func buildAdmin(snap reportqueries.Snapshot, scope stats.Scope, search string) adminDashboardData {
	f := snap.Scoped(scope)
	names := snap.MentorNames()

	d := adminDashboardData{
		TotalMentors: len(snap.Mentors),
		TotalMentees: len(snap.Mentees),
		TotalRecords: len(f.Records),
		Search:       strings.TrimSpace(search),
	}
	if len(f.Records) == 0 {
		d.Notice = msgNoRecordsInWindow
		d.MentorNotice = msgNoMentorData
		return d
	}

	d.HadirRate = stats.Round2(float64(stats.HadirTotal(f.Records)) / float64(d.TotalRecords) * 100)
	d.Meetings = meetingRates(stats.AttendanceRateByMeeting(f.Records))
	d.Distribution = stats.OrderedDistribution(stats.StatusDistribution(f.Records))
	d.Weekly = stats.Trend(f.Records, stats.Weekly)
	d.Monthly = stats.Trend(f.Records, stats.Monthly)

	perf := stats.MentorPerformance(f.Records, snap.Mentees, names)
	if len(perf) == 0 {
		d.MentorNotice = msgNoMentorData
	} else {
		d.TopMentors = stats.Top(perf, rankSize)
		d.BottomMentors = stats.Bottom(perf, rankSize)
	}

	d.Rows = stats.Search(stats.Details(f.Records, f.Mentees, names), d.Search)
	return d
}
