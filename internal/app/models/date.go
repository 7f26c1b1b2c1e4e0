package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// isoLayout matches the timestamps the web client produces (toISOString).
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Now is the clock used for record timestamps.
var Now = func() time.Time { return time.Now().UTC() }

// Date is a timestamp persisted as {"$date": "<ISO-8601>"}.
type Date struct {
	time.Time
}

// DateNow returns the current timestamp.
func DateNow() Date {
	return Date{Time: Now()}
}

type dateJSON struct {
	Date string `json:"$date"`
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(dateJSON{Date: d.UTC().Format(isoLayout)})
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	} else {
		var v dateJSON
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		raw = v.Date
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	d.Time = t.UTC()
	return nil
}
