package enums

import "fmt"

// Department groups staff by the area of the business they work in.
type Department string

const (
	DepartmentFitness     Department = "fitness"
	DepartmentNutrition   Department = "nutrition"
	DepartmentReception   Department = "reception"
	DepartmentManagement  Department = "management"
	DepartmentMaintenance Department = "maintenance"
)

var validDepartments = []Department{
	DepartmentFitness,
	DepartmentNutrition,
	DepartmentReception,
	DepartmentManagement,
	DepartmentMaintenance,
}

// String implements fmt.Stringer.
func (d Department) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Department.
func (d Department) IsValid() bool {
	for _, candidate := range validDepartments {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDepartment converts raw input into a Department.
func ParseDepartment(value string) (Department, error) {
	for _, candidate := range validDepartments {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid department %q", value)
}
