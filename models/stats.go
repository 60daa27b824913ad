// models/stats.go
package models

// DepartmentCount pairs a department with its submission volume.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// Stats is the admin dashboard aggregation, computed on demand.
// ByStatus always carries all four workflow statuses, zero-filled.
type Stats struct {
	Total          int64             `json:"total"`
	ByStatus       map[string]int64  `json:"byStatus"`
	TopDepartments []DepartmentCount `json:"topDepartments"`
}
