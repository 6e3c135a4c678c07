package reports

import (
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// The HR report schema, in order:
//  1. Workforce Summary (summary-cards), from employees + attendance
//  2. Departments (table), from employees
func composeHR(snap *domain.Snapshot, ms domain.MetricSet) []domain.Section {
	return []domain.Section{
		workforceSummary(snap, ms),
		departments(snap),
	}
}

func workforceSummary(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Workforce Summary"
	if !sectionOK(snap, domain.DomainEmployees, domain.DomainAttendance) {
		var failed []domain.Name
		for _, name := range []domain.Name{domain.DomainEmployees, domain.DomainAttendance} {
			if !snap.OK(name) {
				failed = append(failed, name)
			}
		}
		return unavailableSection(title, domain.SectionSummaryCards, failed...)
	}

	return domain.Section{
		Title: title,
		Kind:  domain.SectionSummaryCards,
		Cards: []domain.Card{
			withLabel(cardCount(ms.TotalEmployees), "Active Employees"),
			withLabel(cardCount(ms.PresentToday), "Present Today"),
			withLabel(cardValue(ms.AttendanceRate, pct), "Attendance Rate"),
		},
	}
}

func departments(snap *domain.Snapshot) domain.Section {
	title := "Departments"
	if !snap.Employees.OK {
		return unavailableSection(title, domain.SectionTable, domain.DomainEmployees)
	}

	index := make(map[string]int)
	type group struct {
		name      string
		headcount int
		payroll   float64
	}
	var groups []group
	for _, e := range snap.Employees.Items {
		if !e.Active {
			continue
		}
		dept := e.Department
		if dept == "" {
			dept = "unassigned"
		}
		i, ok := index[dept]
		if !ok {
			i = len(groups)
			index[dept] = i
			groups = append(groups, group{name: dept})
		}
		groups[i].headcount++
		groups[i].payroll += e.Salary
	}

	table := &domain.Table{Columns: []string{"Department", "Headcount", "Payroll"}}
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{g.name, count(g.headcount), money(g.payroll)})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}
