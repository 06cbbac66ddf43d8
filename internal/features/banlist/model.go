package banlist

import "time"

// BanEntry is one record in the external ban-list document. Entries are
// append-only and immutable once written; nothing deduplicates repeat
// bans of the same target.
type BanEntry struct {
	TargetID       int64     `json:"targetId"`
	ReporterID     int64     `json:"reporterId"`
	Reason         string    `json:"reason"`
	Context        string    `json:"context"`
	DateAdded      time.Time `json:"dateAdded"`
	SourceReportID string    `json:"sourceReportId"`
}

// BanList is the external document's shape.
type BanList struct {
	BannedUsers []BanEntry `json:"bannedUsers"`
	LastUpdated time.Time  `json:"lastUpdated"`
}
