package sources

import (
	"context"
	"strings"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

// Field resolution order for employee records:
//
//	id:         id, employee_id, staff_id
//	name:       name, full_name, employee_name
//	role:       role, position, job_title
//	department: department, dept, team
//	salary:     salary, monthly_salary, base_salary
//	active:     active, is_active, employed
var (
	employeeIDFields         = []string{"id", "employee_id", "staff_id"}
	employeeNameFields       = []string{"name", "full_name", "employee_name"}
	employeeRoleFields       = []string{"role", "position", "job_title"}
	employeeDepartmentFields = []string{"department", "dept", "team"}
	employeeSalaryFields     = []string{"salary", "monthly_salary", "base_salary"}
	employeeActiveFields     = []string{"active", "is_active", "employed"}
)

type employeesAdapter struct {
	store client.RecordLister
	path  string
}

func NewEmployeesAdapter(store client.RecordLister) Adapter {
	return &employeesAdapter{store: store, path: "/api/employees"}
}

func (a *employeesAdapter) Domain() domain.Name { return domain.DomainEmployees }

func (a *employeesAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		id, ok := pickString(row, employeeIDFields...)
		if !ok {
			continue
		}
		name, _ := pickString(row, employeeNameFields...)
		role, _ := pickString(row, employeeRoleFields...)
		department, _ := pickString(row, employeeDepartmentFields...)
		salary, _ := pickFloat(row, employeeSalaryFields...)

		// Employees without an explicit active flag count as active.
		active, found := pickBool(row, employeeActiveFields...)
		if !found {
			active = true
		}

		items = append(items, domain.Employee{
			ID:         id,
			Name:       name,
			Role:       role,
			Department: department,
			Salary:     salary,
			Active:     active,
		})
	}

	snap.Employees = domain.Collected(items)
	return nil
}

// Field resolution order for attendance records:
//
//	id:       id, attendance_id
//	employee: employee_id, staff_id, employee
//	date:     date, attendance_date, day
//	status:   status, attendance_status
var (
	attendanceIDFields       = []string{"id", "attendance_id"}
	attendanceEmployeeFields = []string{"employee_id", "staff_id", "employee"}
	attendanceDateFields     = []string{"date", "attendance_date", "day"}
	attendanceStatusFields   = []string{"status", "attendance_status"}
)

type attendanceAdapter struct {
	store client.RecordLister
	path  string
}

func NewAttendanceAdapter(store client.RecordLister) Adapter {
	return &attendanceAdapter{store: store, path: "/api/attendance"}
}

func (a *attendanceAdapter) Domain() domain.Name { return domain.DomainAttendance }

func (a *attendanceAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.AttendanceEntry, 0, len(rows))
	for _, row := range rows {
		employeeID, ok := pickString(row, attendanceEmployeeFields...)
		if !ok {
			continue
		}
		id, _ := pickString(row, attendanceIDFields...)
		date, _ := pickTime(row, attendanceDateFields...)
		status, _ := pickString(row, attendanceStatusFields...)

		items = append(items, domain.AttendanceEntry{
			ID:         id,
			EmployeeID: employeeID,
			Date:       date,
			Status:     normalizeAttendanceStatus(status),
		})
	}

	snap.Attendance = domain.Collected(items)
	return nil
}

func normalizeAttendanceStatus(s string) domain.AttendanceStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "in", "checked_in":
		return domain.AttendancePresent
	case "leave", "on_leave", "vacation", "sick":
		return domain.AttendanceLeave
	default:
		return domain.AttendanceAbsent
	}
}
