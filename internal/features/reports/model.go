package reports

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Status is a report's lifecycle state. Reports start pending and move
// exactly once to approved or denied; both are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Report is a single user-submitted abuse claim.
// @Description Abuse report with its lifecycle state
type Report struct {
	ID            string     `json:"id" example:"9f86d081884c7d65"`
	Target        int64      `json:"target" example:"42"`
	Reporter      int64      `json:"reporter" example:"7"`
	Context       string     `json:"context" example:"spam"`
	Reason        string     `json:"reason" example:"scamming"`
	Timestamp     time.Time  `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	SourceAddress string     `json:"sourceAddress" example:"203.0.113.7"`
	Status        Status     `json:"status" example:"pending" enums:"pending,approved,denied"`
	ActionedAt    *time.Time `json:"actionedAt,omitempty" example:"2024-01-02T00:00:00Z"`
}

// SubmitReportRequest is the submission payload. Target and reporter are
// pointers so a missing field is distinguishable from a zero id.
// @Description Data required to file a report
type SubmitReportRequest struct {
	Target   *int64 `json:"target" example:"42"`
	Reporter *int64 `json:"reporter" example:"7"`
	Context  string `json:"context" example:"spam"`
	Reason   string `json:"reason" example:"scamming"`
}

// ActionReportRequest is the moderator decision payload.
// @Description Decision on a pending report
type ActionReportRequest struct {
	ReportID string `json:"reportId" example:"9f86d081884c7d65"`
	Action   string `json:"action" example:"approved" enums:"approved,denied"`
}

// newReportID returns 8 bytes of cryptographically strong randomness as a
// 16-character lowercase hex string. Collisions are treated as negligible
// rather than checked for.
func newReportID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform RNG is broken; there is
		// no reasonable fallback for identifiers.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
