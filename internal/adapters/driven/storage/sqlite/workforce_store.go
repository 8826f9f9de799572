package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// workforceStore implements driven.WorkforceStore.
type workforceStore struct {
	store *Store
}

var _ driven.WorkforceStore = (*workforceStore)(nil)

// upsertAll writes items in one transaction using a prepared statement.
// after, when set, runs for each item inside the same transaction.
func upsertAll[T any](
	ctx context.Context,
	s *Store,
	table, query string,
	items []T,
	args func(T) ([]any, error),
	after func(ctx context.Context, tx *sql.Tx, item T) error,
) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("preparing %s upsert: %w", table, err)
		}
		defer stmt.Close()

		for _, item := range items {
			values, err := args(item)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				return fmt.Errorf("upserting %s: %w", table, err)
			}
			if after != nil {
				if err := after(ctx, tx, item); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// deleteChildren removes the rows of table owned by parentID.
func deleteChildren(ctx context.Context, tx *sql.Tx, table, column string, parentID int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+column+" = ?", parentID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	return nil
}

func (s *workforceStore) UpsertCompanies(ctx context.Context, companies []domain.Company) (int, error) {
	return upsertAll(ctx, s.store, "companies", `
		INSERT OR REPLACE INTO companies (id, name, country, status, created, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, companies, func(c domain.Company) ([]any, error) {
		data, err := recordJSON(c)
		return []any{c.ID, c.Name, nullString(c.Country), nullString(c.Status),
			timestamp(c.Created), timestamp(c.Modified), data}, err
	}, nil)
}

func (s *workforceStore) UpsertLocations(ctx context.Context, locations []domain.Location) (int, error) {
	return upsertAll(ctx, s.store, "locations", `
		INSERT OR REPLACE INTO locations (id, company_id, name, timezone, created, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, locations, func(l domain.Location) ([]any, error) {
		data, err := recordJSON(l)
		return []any{l.ID, l.CompanyID, l.Name, nullString(l.Timezone),
			timestamp(l.Created), timestamp(l.Modified), data}, err
	}, nil)
}

func (s *workforceStore) UpsertDepartments(ctx context.Context, departments []domain.Department) (int, error) {
	return upsertAll(ctx, s.store, "departments", `
		INSERT OR REPLACE INTO departments (id, company_id, location_id, name, created, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, departments, func(d domain.Department) ([]any, error) {
		data, err := recordJSON(d)
		return []any{d.ID, d.CompanyID, d.LocationID, d.Name,
			timestamp(d.Created), timestamp(d.Modified), data}, err
	}, nil)
}

// UpsertRoles writes roles and replaces each role's stations.
func (s *workforceStore) UpsertRoles(ctx context.Context, roles []domain.Role) (int, error) {
	return upsertAll(ctx, s.store, "roles", `
		INSERT OR REPLACE INTO roles (id, company_id, location_id, department_id, name, created, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, roles, func(r domain.Role) ([]any, error) {
		data, err := recordJSON(r)
		return []any{r.ID, r.CompanyID, r.LocationID, r.DepartmentID, r.Name,
			timestamp(r.Created), timestamp(r.Modified), data}, err
	}, func(ctx context.Context, tx *sql.Tx, r domain.Role) error {
		if err := deleteChildren(ctx, tx, "stations", "role_id", r.ID); err != nil {
			return err
		}
		for _, st := range r.Stations {
			locationID := st.LocationID
			if locationID == 0 {
				locationID = r.LocationID
			}
			_, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO stations (id, role_id, location_id, name) VALUES (?, ?, ?, ?)
			`, st.ID, r.ID, locationID, st.Name)
			if err != nil {
				return fmt.Errorf("upserting station %d: %w", st.ID, err)
			}
		}
		return nil
	})
}

func (s *workforceStore) UpsertUsers(ctx context.Context, users []domain.User) (int, error) {
	return upsertAll(ctx, s.store, "users", `
		INSERT OR REPLACE INTO users (id, company_id, first_name, last_name, email, type, employee_id,
			active, hire_date, created, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, users, func(u domain.User) ([]any, error) {
		data, err := recordJSON(u)
		return []any{u.ID, u.CompanyID, u.FirstName, u.LastName, nullString(u.Email),
			nullString(u.Type), nullString(u.EmployeeID), boolToInt(u.Active), civilDate(u.HireDate),
			timestamp(u.Created), timestamp(u.Modified), data}, err
	}, nil)
}

func (s *workforceStore) UpsertWages(ctx context.Context, wages []domain.Wage) (int, error) {
	return upsertAll(ctx, s.store, "wages", `
		INSERT OR REPLACE INTO wages (id, user_id, role_id, effective_date, wage_type, wage_cents, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, wages, func(w domain.Wage) ([]any, error) {
		data, err := recordJSON(w)
		return []any{w.ID, w.UserID, nullID(w.RoleID), civilDate(w.EffectiveDate),
			w.WageType, w.WageCents, data}, err
	}, nil)
}

// UpsertAssignments replaces every assignment row for the user.
func (s *workforceStore) UpsertAssignments(
	ctx context.Context, userID int64, a domain.Assignments,
) (int, error) {
	err := s.store.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"assignment_locations", "assignment_departments", "assignment_roles"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}
		for _, l := range a.Locations {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO assignment_locations (user_id, location_id, name) VALUES (?, ?, ?)
			`, userID, l.ID, l.Name); err != nil {
				return fmt.Errorf("upserting assignment_locations: %w", err)
			}
		}
		for _, d := range a.Departments {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO assignment_departments (user_id, department_id, location_id, name)
				VALUES (?, ?, ?, ?)
			`, userID, d.ID, d.LocationID, d.Name); err != nil {
				return fmt.Errorf("upserting assignment_departments: %w", err)
			}
		}
		for _, r := range a.Roles {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO assignment_roles
					(user_id, role_id, department_id, location_id, name, is_primary, skill_level)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, userID, r.ID, r.DepartmentID, r.LocationID, r.Name, boolToInt(r.IsPrimary), r.SkillLevel); err != nil {
				return fmt.Errorf("upserting assignment_roles: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(a.Locations) + len(a.Departments) + len(a.Roles), nil
}

// UpsertShifts writes shifts and replaces their breaks.
func (s *workforceStore) UpsertShifts(ctx context.Context, shifts []domain.Shift) (int, error) {
	return upsertAll(ctx, s.store, "shifts", `
		INSERT OR REPLACE INTO shifts (id, company_id, location_id, department_id, role_id, user_id,
			start_time, end_time, open, draft, deleted, attendance_status, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, shifts, func(sh domain.Shift) ([]any, error) {
		data, err := recordJSON(sh)
		return []any{sh.ID, sh.CompanyID, sh.LocationID, sh.DepartmentID, sh.RoleID, sh.UserID,
			timestamp(sh.Start), timestamp(sh.End), boolToInt(sh.Open), boolToInt(sh.Draft),
			boolToInt(sh.Deleted), nullString(sh.AttendanceStatus), timestamp(sh.Modified), data}, err
	}, func(ctx context.Context, tx *sql.Tx, sh domain.Shift) error {
		if err := deleteChildren(ctx, tx, "shift_breaks", "shift_id", sh.ID); err != nil {
			return err
		}
		for _, b := range sh.Breaks {
			_, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO shift_breaks (id, shift_id, start_time, length, is_paid)
				VALUES (?, ?, ?, ?, ?)
			`, nullID(&b.ID), sh.ID, timestamp(b.Start), b.Length, boolToInt(b.Paid))
			if err != nil {
				return fmt.Errorf("upserting shift break %d: %w", b.ID, err)
			}
		}
		return nil
	})
}

// UpsertTimePunches writes punches and replaces their breaks.
func (s *workforceStore) UpsertTimePunches(ctx context.Context, punches []domain.TimePunch) (int, error) {
	return upsertAll(ctx, s.store, "time_punches", `
		INSERT OR REPLACE INTO time_punches (id, company_id, location_id, department_id, role_id, user_id,
			shift_id, clocked_in, clocked_out, approved, tips, deleted, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, punches, func(p domain.TimePunch) ([]any, error) {
		data, err := recordJSON(p)
		return []any{p.ID, p.CompanyID, p.LocationID, p.DepartmentID, p.RoleID, p.UserID,
			nullID(&p.ShiftID), timestamp(p.ClockedIn), timestamp(p.ClockedOut), boolToInt(p.Approved),
			p.Tips, boolToInt(p.Deleted), timestamp(p.Modified), data}, err
	}, func(ctx context.Context, tx *sql.Tx, p domain.TimePunch) error {
		if err := deleteChildren(ctx, tx, "time_punch_breaks", "time_punch_id", p.ID); err != nil {
			return err
		}
		for _, b := range p.Breaks {
			_, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO time_punch_breaks (id, time_punch_id, in_time, out_time, paid, deleted)
				VALUES (?, ?, ?, ?, ?, ?)
			`, nullID(&b.ID), p.ID, timestamp(b.In), timestamp(b.Out), boolToInt(b.Paid), boolToInt(b.Deleted))
			if err != nil {
				return fmt.Errorf("upserting punch break %d: %w", b.ID, err)
			}
		}
		return nil
	})
}

func (s *workforceStore) UpsertReceipts(ctx context.Context, receipts []domain.Receipt) (int, error) {
	return upsertAll(ctx, s.store, "receipts", `
		INSERT OR REPLACE INTO receipts (id, company_id, location_id, receipt_id, receipt_date, net_total,
			tips, status, external_user_id, modified, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, receipts, func(r domain.Receipt) ([]any, error) {
		data, err := recordJSON(r)
		return []any{r.ID, r.CompanyID, r.LocationID, nullString(r.ReceiptID), timestamp(r.ReceiptDate),
			r.NetTotal, r.Tips, nullString(r.Status), nullString(r.ExternalUserID),
			timestamp(r.Modified), data}, err
	}, nil)
}

// UpsertDailySalesAndLabor keys rows by location and date, since the
// report rows carry neither.
func (s *workforceStore) UpsertDailySalesAndLabor(
	ctx context.Context, locationID int64, rows []domain.DailySalesAndLabor,
) (int, error) {
	return upsertAll(ctx, s.store, "daily_sales_and_labor", `
		INSERT OR REPLACE INTO daily_sales_and_labor (location_id, date, actual_sales, projected_sales,
			actual_labor_cost, projected_labor_cost, sales_per_labor_hour, labor_percent, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rows, func(r domain.DailySalesAndLabor) ([]any, error) {
		if r.Date.IsZero() {
			return nil, fmt.Errorf("%w: daily sales row without a date", domain.ErrInvalidInput)
		}
		data, err := recordJSON(r)
		return []any{locationID, r.Date.String(), r.ActualSales, r.ProjectedSales, r.ActualLaborCost,
			r.ProjectedLaborCost, r.SalesPerLaborHour, r.LaborPercent, data}, err
	}, nil)
}
