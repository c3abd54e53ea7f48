package calendar

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Minute is a minute-of-day in [0, 1440].
type Minute int

const MinutesPerDay Minute = 24 * 60

func Clock(hour, min int) Minute {
	return Minute(hour*60 + min)
}

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Minute, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	v := Clock(h, m)
	if v > MinutesPerDay {
		return 0, fmt.Errorf("time %q past end of day", s)
	}
	return v, nil
}

func (m Minute) Hour() int { return int(m) / 60 }

func (m Minute) Min() int { return int(m) % 60 }

func (m Minute) Add(minutes int) Minute {
	return m + Minute(minutes)
}

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Min())
}

func (m Minute) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Minute) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Value stores the minute as a plain integer column.
func (m Minute) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *Minute) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = Minute(v)
	case int32:
		*m = Minute(v)
	case nil:
		*m = 0
	default:
		return fmt.Errorf("calendar: cannot scan %T into Minute", src)
	}
	return nil
}
