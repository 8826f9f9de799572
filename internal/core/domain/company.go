package domain

// Identity is the account an access token belongs to.
type Identity struct {
	IdentityID int64  `json:"identity_id"`
	UserID     int64  `json:"user_id,omitempty"`
	CompanyID  int64  `json:"company_id,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email,omitempty"`
	RawJSON
}

// Company is the top of the 7shifts organisation tree.
type Company struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Country  string    `json:"country,omitempty"`
	Status   string    `json:"status,omitempty"`
	Created  Timestamp `json:"created"`
	Modified Timestamp `json:"modified"`
	RawJSON
}

// Location is a physical site belonging to a company.
type Location struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"formatted_address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
	Created   Timestamp `json:"created"`
	Modified  Timestamp `json:"modified"`
	RawJSON
}

// Department groups roles within a location.
type Department struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"company_id"`
	LocationID int64     `json:"location_id"`
	Name       string    `json:"name"`
	Created    Timestamp `json:"created"`
	Modified   Timestamp `json:"modified"`
	RawJSON
}

// Role is a job users can be scheduled for.
type Role struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	LocationID   int64     `json:"location_id"`
	DepartmentID int64     `json:"department_id"`
	Name         string    `json:"name"`
	Color        string    `json:"color,omitempty"`
	Sort         int       `json:"sort"`
	NumStations  int       `json:"num_stations"`
	Stations     []Station `json:"stations,omitempty"`
	Created      Timestamp `json:"created"`
	Modified     Timestamp `json:"modified"`
	RawJSON
}

// Station is a position within a role, such as a particular till.
type Station struct {
	ID         int64  `json:"id"`
	RoleID     int64  `json:"role_id"`
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
}
