package adminlog

import (
	"encoding/json"
	"time"
)

type ListAdminLogFilter struct {
	AdminID *string
	Action  *string
	Limit   int
	Offset  int
}

func (f *ListAdminLogFilter) Normalize() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type AdminLogResponse struct {
	ID         string          `json:"id"`
	AdminID    string          `json:"admin_id"`
	Action     string          `json:"action"`
	TargetID   *string         `json:"target_id"`
	TargetType *string         `json:"target_type"`
	Details    json.RawMessage `json:"details,omitempty"`
	IPAddress  *string         `json:"ip_address"`
	UserAgent  *string         `json:"user_agent"`
	CreatedAt  string          `json:"created_at"`
}

type ListAdminLogResponse struct {
	Logs       []AdminLogResponse `json:"logs"`
	TotalCount int64              `json:"total_count"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

func ToResponse(l AdminLog) AdminLogResponse {
	resp := AdminLogResponse{
		ID:        l.ID,
		AdminID:   l.AdminID,
		Action:    string(l.Action),
		TargetID:  l.TargetID,
		Details:   l.Details,
		IPAddress: l.IPAddress,
		UserAgent: l.UserAgent,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
	if l.TargetType != nil {
		t := string(*l.TargetType)
		resp.TargetType = &t
	}
	return resp
}
