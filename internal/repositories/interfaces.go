package repositories

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Query         string `json:"query"` // Search query for name or email
	RoleID        *uint  `json:"role_id"`
	RoleIDs       []uint `json:"role_ids"`
	InstitutionID *uint  `json:"institution_id"`
	ParentID      *uint  `json:"parent_id"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
	SortBy        string `json:"sort_by"`    // "name", "full_name", "created_at"
	SortOrder     string `json:"sort_order"` // "asc", "desc"
}
