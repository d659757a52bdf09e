package rbac

import "go-hr-portal/internal/domain"

// DefaultPolicies maps each user type to the resource/action pairs it may use.
// Employer-only and employee-only operations are expressed by omission.
var DefaultPolicies = [][]string{
	{domain.UserTypeEmployer, "company", "*"},
	{domain.UserTypeEmployer, "user", "*"},
	{domain.UserTypeEmployer, "employee", "*"},
	{domain.UserTypeEmployer, "leave", "read"},
	{domain.UserTypeEmployer, "leave", "read_all"},
	{domain.UserTypeEmployer, "leave", "approve"},
	{domain.UserTypeEmployer, "leave", "delete"},
	{domain.UserTypeEmployer, "attendance", "read"},
	{domain.UserTypeEmployer, "attendance", "manage"},
	{domain.UserTypeEmployer, "attendance", "export"},
	{domain.UserTypeEmployer, "review", "*"},
	{domain.UserTypeEmployer, "document", "*"},
	{domain.UserTypeEmployer, "development", "*"},

	{domain.UserTypeEmployee, "leave", "create"},
	{domain.UserTypeEmployee, "leave", "read"},
	{domain.UserTypeEmployee, "leave", "delete"},
	{domain.UserTypeEmployee, "attendance", "clock"},
	{domain.UserTypeEmployee, "attendance", "read"},
	{domain.UserTypeEmployee, "review", "read"},
	{domain.UserTypeEmployee, "document", "read"},
	{domain.UserTypeEmployee, "development", "read"},
	{domain.UserTypeEmployee, "user", "self"},
}
