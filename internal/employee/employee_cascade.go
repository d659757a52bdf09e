package employee

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type cascadeKeys struct {
	EmployeeID string
	UserID     string
}

// cascadeStep deletes one table's rows for an employee. References lists the
// tables the rows point at through foreign keys.
type cascadeStep struct {
	Table      string
	References []string
	Where      string
	Args       func(k cascadeKeys) []any
}

func byEmployee(k cascadeKeys) []any { return []any{k.EmployeeID} }

var employeeCascade = []cascadeStep{
	{
		Table:      "goals",
		References: []string{"reviews"},
		Where:      "review_id IN (SELECT id FROM reviews WHERE employee_id = ?)",
		Args:       byEmployee,
	},
	{Table: "reviews", References: []string{"employees", "companies"}, Where: "employee_id = ?", Args: byEmployee},
	{Table: "user_badges", References: []string{"employees", "companies"}, Where: "employee_id = ?", Args: byEmployee},
	{Table: "enrollments", References: []string{"employees", "companies"}, Where: "employee_id = ?", Args: byEmployee},
	{Table: "documents", References: []string{"employees", "companies"}, Where: "employee_id = ?", Args: byEmployee},
	{Table: "leaves", References: []string{"employees", "companies"}, Where: "employee_id = ?", Args: byEmployee},
	{Table: "attendances", References: []string{"employees", "companies"}, Where: "employee_id = ?", Args: byEmployee},
	{Table: "employees", References: []string{"users", "companies"}, Where: "id = ?", Args: byEmployee},
	{
		Table:      "users",
		References: []string{"companies"},
		Where:      "id = ?",
		Args:       func(k cascadeKeys) []any { return []any{k.UserID} },
	},
}

// validateCascadePlan checks that every table is deleted before any table it
// references, so no step can trip a foreign key.
func validateCascadePlan(plan []cascadeStep) error {
	position := make(map[string]int, len(plan))
	for i, step := range plan {
		if _, dup := position[step.Table]; dup {
			return fmt.Errorf("cascade: table %q listed twice", step.Table)
		}
		position[step.Table] = i
	}

	for i, step := range plan {
		for _, parent := range step.References {
			j, inPlan := position[parent]
			if inPlan && j < i {
				return fmt.Errorf("cascade: %q deleted before its child %q", parent, step.Table)
			}
		}
	}
	return nil
}

func runCascade(ctx context.Context, tx *gorm.DB, plan []cascadeStep, keys cascadeKeys) ([]DeletedRows, error) {
	deleted := make([]DeletedRows, 0, len(plan))
	for _, step := range plan {
		res := tx.WithContext(ctx).Exec(
			fmt.Sprintf("DELETE FROM %s WHERE %s", step.Table, step.Where),
			step.Args(keys)...,
		)
		if res.Error != nil {
			return nil, fmt.Errorf("cascade delete %s: %w", step.Table, res.Error)
		}
		deleted = append(deleted, DeletedRows{Table: step.Table, Deleted: res.RowsAffected})
	}
	return deleted, nil
}
