package domain

import (
	"time"
)

// SiteSetting is one typed key/value row: category + name -> value.
// Pricing knobs (free-shipping threshold, flat fee, tax rate) and the
// versioned homepage content document live here.
type SiteSetting struct {
	ID        int64     `json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Category  string    `gorm:"index" json:"category" form:"category"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SiteSetting) TableName() string {
	return "site_settings"
}

// AuditLog records admin mutations for the dashboard activity view.
type AuditLog struct {
	ID        int64     `json:"id,string"`
	Actor     string    `json:"actor"`
	ActorIP   string    `json:"actor_ip"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (AuditLog) TableName() string {
	return "audit_log"
}
