package domain

import "time"

// Project groups tasks under a managing user. Membership is a many-to-many
// relation persisted by the store; the manager is always a member.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ManagerID   string    `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
