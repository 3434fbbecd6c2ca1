package domain

import "time"

// Project is owned by exactly one tenant. TenantID is the scoping key and is
// never serialized: callers only ever see their own tenant's projects.
type Project struct {
	ID        int64     `db:"id" json:"id"`
	TenantID  int64     `db:"tenant_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
