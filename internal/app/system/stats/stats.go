// internal/app/system/stats/stats.go
//
// Package stats turns the raw mentor, mentee and presensi tables into the
// numbers shown on the dashboard and statistik pages. Everything here is a
// pure function over slices; callers load the tables and apply Restrict
// before aggregating.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Scope describes whose data a caller may see.
type Scope struct {
	Role string
	// MentorID is the signed-in mentor's id when Role is Mentor, or the
	// admin's optional mentor filter (0 = all mentors).
	MentorID int
	// From and To bound Tanggal inclusively. A zero value leaves that side open.
	From, To time.Time
}

// Windowed reports whether a date filter is active.
func (s Scope) Windowed() bool {
	return !s.From.IsZero() || !s.To.IsZero()
}

// Filtered is the result of Restrict.
type Filtered struct {
	Mentees []models.Mentee
	Records []models.Attendance
}

// Restrict applies role scoping and the date window.
//
// A mentor sees only their own mentees and those mentees' records. An admin
// sees everything, or one mentor's slice when MentorID is set. When a date
// window is set, records whose Tanggal does not parse are dropped.
func Restrict(scope Scope, mentees []models.Mentee, records []models.Attendance) Filtered {
	var out Filtered

	scoped := scope.Role == models.RoleMentor || scope.MentorID != 0
	if scoped {
		ids := make(map[int]bool)
		for _, m := range mentees {
			if m.MentorID == scope.MentorID {
				out.Mentees = append(out.Mentees, m)
				ids[m.ID] = true
			}
		}
		for _, r := range records {
			if ids[r.MenteeID] {
				out.Records = append(out.Records, r)
			}
		}
	} else {
		out.Mentees = append(out.Mentees, mentees...)
		out.Records = append(out.Records, records...)
	}

	if scope.Windowed() {
		out.Records = InWindow(out.Records, scope.From, scope.To)
	}
	return out
}

// InWindow keeps records dated within [from, to]. Zero bounds are open.
func InWindow(records []models.Attendance, from, to time.Time) []models.Attendance {
	var out []models.Attendance
	for _, r := range records {
		d, ok := r.Date()
		if !ok {
			continue
		}
		if !from.IsZero() && d.Before(dayOf(from)) {
			continue
		}
		if !to.IsZero() && d.After(dayOf(to)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Round2 rounds to two decimals the way the pages display percentages.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(float64(part) / float64(whole) * 100)
}

// AttendanceRateByMeeting returns the percentage of Hadir records per
// pertemuan.
func AttendanceRateByMeeting(records []models.Attendance) map[int]float64 {
	hadir := make(map[int]int)
	total := make(map[int]int)
	for _, r := range records {
		total[r.Pertemuan]++
		if r.Hadir() {
			hadir[r.Pertemuan]++
		}
	}
	out := make(map[int]float64, len(total))
	for p, n := range total {
		out[p] = percent(hadir[p], n)
	}
	return out
}

// StatusDistribution counts records per status. Statuses outside the known
// set are counted under their own name.
func StatusDistribution(records []models.Attendance) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		out[r.Status]++
	}
	return out
}

// StatusCount is one bar of a status distribution.
type StatusCount struct {
	Status  string
	Count   int
	Percent float64
}

// OrderedDistribution lists a distribution with the known statuses first
// (always present, possibly 0) followed by any others in name order.
func OrderedDistribution(dist map[string]int) []StatusCount {
	total := 0
	for _, n := range dist {
		total += n
	}
	out := make([]StatusCount, 0, len(dist)+len(models.Statuses))
	for _, s := range models.Statuses {
		out = append(out, StatusCount{Status: s, Count: dist[s], Percent: percent(dist[s], total)})
	}
	var extra []string
	for s := range dist {
		if !models.ValidStatus(s) {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	for _, s := range extra {
		out = append(out, StatusCount{Status: s, Count: dist[s], Percent: percent(dist[s], total)})
	}
	return out
}

// DistinctMeetings counts the distinct pertemuan values in records.
func DistinctMeetings(records []models.Attendance) int {
	seen := make(map[int]struct{})
	for _, r := range records {
		seen[r.Pertemuan] = struct{}{}
	}
	return len(seen)
}

// HadirTotal counts Hadir records.
func HadirTotal(records []models.Attendance) int {
	n := 0
	for _, r := range records {
		if r.Hadir() {
			n++
		}
	}
	return n
}

// DateBounds returns the earliest and latest parseable Tanggal.
func DateBounds(records []models.Attendance) (min, max time.Time, ok bool) {
	for _, r := range records {
		d, good := r.Date()
		if !good {
			continue
		}
		if !ok || d.Before(min) {
			min = d
		}
		if !ok || d.After(max) {
			max = d
		}
		ok = true
	}
	return min, max, ok
}

// PersonSummary is one row of the per-mentee recap.
type PersonSummary struct {
	MenteeID    int
	Nama        string
	Kelompok    string
	Mentor      string
	Hadir       int
	Sakit       int
	Izin        int
	Alfa        int
	PersenHadir float64
}

// PerPersonSummary builds the recap for every person in people, ordered by
// mentee id. Counts default to 0.
//
// PersenHadir divides a person's Hadir count by the number of distinct
// pertemuan in the whole records slice, not by the meetings that person had.
// mentorNames may be nil, in which case Mentor is left empty.
func PerPersonSummary(records []models.Attendance, people []models.Mentee, mentorNames map[int]string) []PersonSummary {
	meetings := DistinctMeetings(records)

	counts := make(map[int]map[string]int)
	for _, r := range records {
		c := counts[r.MenteeID]
		if c == nil {
			c = make(map[string]int)
			counts[r.MenteeID] = c
		}
		c[r.Status]++
	}

	out := make([]PersonSummary, 0, len(people))
	for _, p := range people {
		c := counts[p.ID]
		row := PersonSummary{
			MenteeID: p.ID,
			Nama:     p.Nama,
			Kelompok: p.Kelompok,
			Hadir:    c[models.StatusHadir],
			Sakit:    c[models.StatusSakit],
			Izin:     c[models.StatusIzin],
			Alfa:     c[models.StatusAlfa],
		}
		if mentorNames != nil {
			row.Mentor = models.MentorName(mentorNames, p.MentorID)
		}
		row.PersenHadir = percent(row.Hadir, meetings)
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MenteeID < out[j].MenteeID })
	return out
}

// MeetingStatus holds the per-status counts of one pertemuan.
type MeetingStatus struct {
	Pertemuan int
	Counts    map[string]int
	Total     int
	Rate      float64
}

// Count returns the number of records with status s.
func (m MeetingStatus) Count(s string) int { return m.Counts[s] }

// StatusByMeeting counts records per (pertemuan, status), ordered by
// pertemuan.
func StatusByMeeting(records []models.Attendance) []MeetingStatus {
	byMeeting := make(map[int]*MeetingStatus)
	for _, r := range records {
		m := byMeeting[r.Pertemuan]
		if m == nil {
			m = &MeetingStatus{Pertemuan: r.Pertemuan, Counts: make(map[string]int)}
			byMeeting[r.Pertemuan] = m
		}
		m.Counts[r.Status]++
		m.Total++
	}
	out := make([]MeetingStatus, 0, len(byMeeting))
	for _, m := range byMeeting {
		m.Rate = percent(m.Counts[models.StatusHadir], m.Total)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pertemuan < out[j].Pertemuan })
	return out
}

// Period selects the bucket size for Trend.
type Period int

const (
	Weekly Period = iota
	Monthly
)

// TrendPoint is one bucket of a Trend.
type TrendPoint struct {
	Label string
	Start time.Time
	Total int
	Rate  float64
}

// Trend returns the Hadir rate per calendar week (Monday to Sunday) or per
// month, oldest first. Records without a valid date are skipped.
func Trend(records []models.Attendance, period Period) []TrendPoint {
	type bucket struct{ hadir, total int }
	buckets := make(map[time.Time]*bucket)
	for _, r := range records {
		d, ok := r.Date()
		if !ok {
			continue
		}
		start := bucketStart(d, period)
		b := buckets[start]
		if b == nil {
			b = &bucket{}
			buckets[start] = b
		}
		b.total++
		if r.Hadir() {
			b.hadir++
		}
	}

	out := make([]TrendPoint, 0, len(buckets))
	for start, b := range buckets {
		out = append(out, TrendPoint{
			Label: bucketLabel(start, period),
			Start: start,
			Total: b.total,
			Rate:  percent(b.hadir, b.total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func bucketStart(d time.Time, period Period) time.Time {
	if period == Monthly {
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

func bucketLabel(start time.Time, period Period) string {
	if period == Monthly {
		return start.Format("2006-01")
	}
	return start.Format(models.DateLayout) + "/" + start.AddDate(0, 0, 6).Format(models.DateLayout)
}

// MentorRate is the Hadir rate across all records of one mentor's mentees.
type MentorRate struct {
	MentorID int
	Nama     string
	Total    int
	Rate     float64
}

// MentorPerformance ranks mentors by the Hadir rate of their mentees,
// highest first. Records of mentees that no longer exist are ignored, and
// mentors without any record are left out.
func MentorPerformance(records []models.Attendance, mentees []models.Mentee, mentorNames map[int]string) []MentorRate {
	mentorOf := make(map[int]int, len(mentees))
	for _, m := range mentees {
		mentorOf[m.ID] = m.MentorID
	}

	type acc struct{ hadir, total int }
	per := make(map[int]*acc)
	for _, r := range records {
		mid, ok := mentorOf[r.MenteeID]
		if !ok {
			continue
		}
		a := per[mid]
		if a == nil {
			a = &acc{}
			per[mid] = a
		}
		a.total++
		if r.Hadir() {
			a.hadir++
		}
	}

	out := make([]MentorRate, 0, len(per))
	for id, a := range per {
		out = append(out, MentorRate{
			MentorID: id,
			Nama:     models.MentorName(mentorNames, id),
			Total:    a.total,
			Rate:     percent(a.hadir, a.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Nama < out[j].Nama
	})
	return out
}

// Top returns the first n entries of a ranking sorted by MentorPerformance.
func Top(rates []MentorRate, n int) []MentorRate {
	if n > len(rates) {
		n = len(rates)
	}
	return rates[:n]
}

// Bottom returns the n lowest rates, lowest first.
func Bottom(rates []MentorRate, n int) []MentorRate {
	if n > len(rates) {
		n = len(rates)
	}
	out := make([]MentorRate, 0, n)
	for i := len(rates) - 1; i >= len(rates)-n; i-- {
		out = append(out, rates[i])
	}
	return out
}

// AlfaCount is one row of the Alfa ranking.
type AlfaCount struct {
	MenteeID int
	Nama     string
	Alfa     int
}

// AlfaRanking lists people with at least one Alfa record, most Alfa first.
func AlfaRanking(records []models.Attendance, people []models.Mentee) []AlfaCount {
	alfa := make(map[int]int)
	for _, r := range records {
		if r.Status == models.StatusAlfa {
			alfa[r.MenteeID]++
		}
	}
	var out []AlfaCount
	for _, p := range people {
		if n := alfa[p.ID]; n > 0 {
			out = append(out, AlfaCount{MenteeID: p.ID, Nama: p.Nama, Alfa: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Alfa != out[j].Alfa {
			return out[i].Alfa > out[j].Alfa
		}
		return out[i].Nama < out[j].Nama
	})
	return out
}

// DetailRow is an attendance record joined with its mentee and mentor.
type DetailRow struct {
	models.Attendance
	Nama     string
	Kelompok string
	Mentor   string
}

// Details joins records with mentees (and mentor names when given), newest
// first. Records whose mentee is missing keep an empty Nama.
func Details(records []models.Attendance, mentees []models.Mentee, mentorNames map[int]string) []DetailRow {
	byID := make(map[int]models.Mentee, len(mentees))
	for _, m := range mentees {
		byID[m.ID] = m
	}
	out := make([]DetailRow, 0, len(records))
	for _, r := range records {
		row := DetailRow{Attendance: r}
		if m, ok := byID[r.MenteeID]; ok {
			row.Nama = m.Nama
			row.Kelompok = m.Kelompok
			if mentorNames != nil {
				row.Mentor = models.MentorName(mentorNames, m.MentorID)
			}
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tanggal != out[j].Tanggal {
			return out[i].Tanggal > out[j].Tanggal
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Search keeps rows whose mentee name or status contains q, ignoring case.
// An empty q returns rows unchanged.
func Search(rows []DetailRow, q string) []DetailRow {
	q = text.Fold(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	var out []DetailRow
	for _, r := range rows {
		if strings.Contains(text.Fold(r.Nama), q) || strings.Contains(text.Fold(r.Status), q) {
			out = append(out, r)
		}
	}
	return out
}

// History returns one mentee's rows ordered by pertemuan.
func History(rows []DetailRow, menteeID int) []DetailRow {
	var out []DetailRow
	for _, r := range rows {
		if r.MenteeID == menteeID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pertemuan < out[j].Pertemuan })
	return out
}

// ParseWindow reads the from/to query values. A blank or malformed value
// leaves that side open; reversed bounds are swapped.
func ParseWindow(from, to string) (time.Time, time.Time) {
	f, _ := time.Parse(models.DateLayout, strings.TrimSpace(from))
	t, _ := time.Parse(models.DateLayout, strings.TrimSpace(to))
	if !f.IsZero() && !t.IsZero() && f.After(t) {
		f, t = t, f
	}
	return f, t
}
