package artiststore

import (
	"database/sql"
	"time"
)

// Verdict is a tri-state verification outcome. The zero value means no
// verdict has been recorded yet, which is distinct from an explicit fail.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictPass
	VerdictFail
)

// String returns a human-readable verdict label.
func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Artist is one persisted artist record.
type Artist struct {
	ID               int64
	Name             string
	SongName         string
	ChannelURL       string
	AutoVerified     Verdict
	ManuallyVerified Verdict
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Verified reports the effective verification state. A manual verdict always
// overrides the automatic one.
func (a *Artist) Verified() bool {
	if a.ManuallyVerified != VerdictUnknown {
		return a.ManuallyVerified == VerdictPass
	}
	return a.AutoVerified == VerdictPass
}

// NeedsReview reports whether the record awaits a human decision: the
// automatic check failed and nobody has overridden it.
func (a *Artist) NeedsReview() bool {
	return a.AutoVerified == VerdictFail && a.ManuallyVerified == VerdictUnknown
}

func verdictToDB(v Verdict) any {
	switch v {
	case VerdictPass:
		return 1
	case VerdictFail:
		return 0
	default:
		return nil
	}
}

func verdictFromDB(value sql.NullInt64) Verdict {
	if !value.Valid {
		return VerdictUnknown
	}
	if value.Int64 != 0 {
		return VerdictPass
	}
	return VerdictFail
}
