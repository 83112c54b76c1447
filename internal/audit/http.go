package audit

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"padel-projection/internal/auth"
)

// ClientIP extracts client ip from common headers or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// EntryFromRequest fills caller details from the request and its auth context.
// Metadata that cannot be encoded is dropped.
func EntryFromRequest(r *http.Request, action, resourceType string, metadata any) Entry {
	entry := Entry{
		Action:       action,
		ResourceType: resourceType,
	}
	if r == nil {
		return entry
	}
	ctx := r.Context()
	entry.Actor = auth.SubjectFromContext(ctx)
	entry.Role = string(auth.RoleFromContext(ctx))
	entry.IP = ClientIP(r)
	entry.UserAgent = r.UserAgent()
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = raw
		}
	}
	return entry
}
