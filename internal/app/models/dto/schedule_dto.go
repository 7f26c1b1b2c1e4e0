package dto

import (
	"bytes"
	"encoding/json"

	"github.com/yigit/facultyhub/internal/app/models"
)

// DaySchedule holds the courses meeting on one day
type DaySchedule struct {
	Day     models.Weekday `json:"day"`
	Courses []interface{}  `json:"courses"`
}

// WeekSchedule is a week of DaySchedule in Monday..Sunday order. It
// serializes as an object keyed by day name, keeping that order.
type WeekSchedule []DaySchedule

func (w WeekSchedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(day.Day))
		if err != nil {
			return nil, err
		}
		courses := day.Courses
		if courses == nil {
			courses = []interface{}{}
		}
		val, err := json.Marshal(courses)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Day returns the courses of one day
func (w WeekSchedule) Day(day models.Weekday) []interface{} {
	for _, d := range w {
		if d.Day == day {
			return d.Courses
		}
	}
	return nil
}

// ScheduleResponse is a grouped schedule plus the flat course list it was
// built from
type ScheduleResponse struct {
	Owner       interface{}   `json:"owner,omitempty"`
	Schedule    WeekSchedule  `json:"schedule"`
	RawSchedule []interface{} `json:"rawSchedule"`
}
