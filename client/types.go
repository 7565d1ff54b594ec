package client

import "time"

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	Applications     int `json:"applications"`
	OpenApplications int `json:"open_applications"`
	Offers           int `json:"offers"`
	Accepted         int `json:"accepted"`
	Rejected         int `json:"rejected"`
	Withdrawn        int `json:"withdrawn"`
	OpenTasks        int `json:"open_tasks"`
	OverdueTasks     int `json:"overdue_tasks"`
}

// User is an applytrail account.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session is an issued session token and the user it belongs to.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Company is an employer in the shared catalog.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       *string   `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Role is a position at a company.
type Role struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year,omitempty"`
	URL       *string   `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Company   *Company  `json:"company,omitempty"`
}

// Stage is one recruitment phase of an application.
type Stage struct {
	ID              int64     `json:"id"`
	ApplicationID   int64     `json:"application_id"`
	Type            string    `json:"type"`
	Date            time.Time `json:"date"`
	EmojiUnicodeHex *string   `json:"emoji_unicode_hex,omitempty"`
	Remark          *string   `json:"remark,omitempty"`
}

// StageRequest is the payload for adding or replacing a stage.
type StageRequest struct {
	Type            string    `json:"type"`
	Date            time.Time `json:"date"`
	EmojiUnicodeHex *string   `json:"emoji_unicode_hex,omitempty"`
	Remark          *string   `json:"remark,omitempty"`
}

// Application is an application as listed or fetched. List results carry
// the latest stage; a single fetch carries the role and all stages.
type Application struct {
	ID          int64      `json:"id"`
	RoleID      int64      `json:"role_id"`
	CreatedAt   time.Time  `json:"created_at"`
	RoleTitle   string     `json:"role_title,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	LatestStage *string    `json:"latest_stage,omitempty"`
	LatestDate  *time.Time `json:"latest_date,omitempty"`
	Role        *Role      `json:"role,omitempty"`
	Stages      []Stage    `json:"stages,omitempty"`
}

// CreateApplicationRequest is the payload for creating an application.
type CreateApplicationRequest struct {
	RoleID    int64     `json:"role_id"`
	AppliedAt time.Time `json:"applied_at"`
	Remark    *string   `json:"remark,omitempty"`
}

// Task is a to-do item, optionally tied to an application.
type Task struct {
	ID            int64      `json:"id"`
	ApplicationID *int64     `json:"application_id,omitempty"`
	Title         string     `json:"title"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	NotifyOnDue   bool       `json:"notify_on_due"`
	Completed     bool       `json:"completed"`
}

// TaskRequest is the payload for creating or replacing a task.
type TaskRequest struct {
	ApplicationID *int64     `json:"application_id,omitempty"`
	Title         string     `json:"title"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	NotifyOnDue   bool       `json:"notify_on_due"`
	Completed     bool       `json:"completed"`
}

// WorldEdge is an aggregated transition between two world-graph nodes.
type WorldEdge struct {
	Source        string  `json:"source"`
	Dest          string  `json:"dest"`
	UserCount     int     `json:"user_count"`
	TotalNumHours float64 `json:"total_num_hours"`
	AvgNumHours   float64 `json:"avg_num_hours"`
}

// WorldView is the aggregated stage-transition graph of a role.
type WorldView struct {
	Role             Role `json:"role"`
	ApplicationCount int  `json:"application_count"`
	Graph            struct {
		Nodes []string    `json:"nodes"`
		Edges []WorldEdge `json:"edges"`
	} `json:"graph"`
}
