package adminlog

import (
	"context"
	"encoding/json"
)

// RequestMeta is the client information recorded with every admin log.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type requestMetaKey struct{}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}

// NewEntry builds a log entry for adminID, filling client info from ctx.
// details is marshalled to JSON; a marshal failure stores no details.
func NewEntry(ctx context.Context, adminID string, action Action, targetType TargetType, targetID string, details any) AdminLog {
	entry := AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: &targetType,
	}
	if targetID != "" {
		entry.TargetID = &targetID
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = raw
		}
	}

	meta := RequestMetaFromContext(ctx)
	if meta.IPAddress != "" {
		entry.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		entry.UserAgent = &meta.UserAgent
	}
	return entry
}
