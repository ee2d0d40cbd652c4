package domain

// Department is a named organizational unit referenced by most financial records.
type Department struct {
	DepartmentID string  `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Description  string  `json:"description,omitempty"`
	HeadUserID   *string `json:"head,omitempty"`
	IsActive     bool    `json:"is_active"`
	AuditFields
}
