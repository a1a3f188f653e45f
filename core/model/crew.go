package model

import (
	"strconv"
	"strings"
	"time"
)

// DayRemainsSentinel is substituted when a crew record carries no usable
// contract-days-remaining value. It sorts such records after every real one.
const DayRemainsSentinel = 999

// CrewRecord describes one seafarer as delivered by the crew registry.
// Records are immutable within a scheduling computation; derived values such
// as RemainingDays are computed on read.
type CrewRecord struct {
	SeamanCode   int    `json:"seamancode"`    // unique registry identifier
	SeafarerCode string `json:"seafarercode"`  // document identifier, free-form
	Name         string `json:"name"`
	Rank         string `json:"rank"`          // e.g. "NAKHODA", "KKM", "MUALIM I"
	Location     string `json:"location"`      // current vessel name or a shore status string
	PrevLocation string `json:"prev_location"` // vessel before the current assignment or status
	Certificate  string `json:"certificate"`   // e.g. "ANT-I", "ATT-III"
	Age          int    `json:"age"`
	Experience   string `json:"experience"`
	Fleet        string `json:"fleet"`
	StartDate    string `json:"start_date"` // DD/MM/YYYY as delivered; may be empty or malformed
	EndDate      string `json:"end_date"`
	DayRemains   string `json:"day_remains"` // raw registry value; see RemainingDays
	DayElapsed   string `json:"day_elapsed"` // raw registry value; see ElapsedDays
	Status       string `json:"status"`      // "ON BOARD", "OFF", ...
	Phone        string `json:"phone"`
}

// RemainingDays returns the contract days left, or DayRemainsSentinel when
// the raw value is missing or unparseable.
func (c CrewRecord) RemainingDays() int {
	return parseDays(c.DayRemains, DayRemainsSentinel)
}

// ElapsedDays returns the days since the assignment started, or 0 when the
// raw value is missing or unparseable.
func (c CrewRecord) ElapsedDays() int {
	return parseDays(c.DayElapsed, 0)
}

func parseDays(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// Registries occasionally deliver "120.0".
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return fallback
}

// OnBoard reports whether the crew member is currently serving on a vessel.
func (c CrewRecord) OnBoard() bool {
	return strings.EqualFold(strings.TrimSpace(c.Status), "ON BOARD")
}

// ContractEnd parses EndDate. The second return value is false when the date
// is missing or malformed; callers treat such contracts as ending in the
// indefinite future.
func (c CrewRecord) ContractEnd() (time.Time, bool) {
	return ParseDate(c.EndDate)
}

// ParseDate parses the DD/MM/YYYY format used by the registry, falling back
// to ISO dates.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CrewStatus classifies where a crew member currently is. Shore statuses are
// delivered by the registry as magic location strings; StatusOf decouples the
// semantic status from the display string.
type CrewStatus int

const (
	StatusVessel CrewStatus = iota // serving on a named vessel
	StatusStandBy
	StatusAshore
	StatusPendingPay
	StatusPendingLeave
)

// StatusOf maps a location string to its CrewStatus.
func StatusOf(location string) CrewStatus {
	switch strings.ToUpper(strings.TrimSpace(location)) {
	case "DARAT STAND-BY", "STAND BY CREW":
		return StatusStandBy
	case "DARAT", "DARAT BIASA":
		return StatusAshore
	case "PENDING GAJI", "PENDING GAJI CUTI":
		return StatusPendingPay
	case "PENDING CUTI":
		return StatusPendingLeave
	default:
		return StatusVessel
	}
}

// Ashore reports whether the status denotes any shore assignment.
func (s CrewStatus) Ashore() bool { return s != StatusVessel }

// ShorePriority orders shore statuses for replacement ranking; lower values
// are preferred as relievers.
func (s CrewStatus) ShorePriority() int {
	switch s {
	case StatusStandBy:
		return 0
	case StatusAshore:
		return 1
	case StatusPendingPay:
		return 2
	case StatusPendingLeave:
		return 3
	default:
		return 4
	}
}

// String returns a human-readable representation of the status.
func (s CrewStatus) String() string {
	switch s {
	case StatusVessel:
		return "vessel"
	case StatusStandBy:
		return "stand-by"
	case StatusAshore:
		return "ashore"
	case StatusPendingPay:
		return "pending-pay"
	case StatusPendingLeave:
		return "pending-leave"
	default:
		return "unknown"
	}
}
