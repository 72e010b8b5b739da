package core

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// Date is a calendar date such as a journal day.
type Date struct {
	time.Time
}

// NewDate returns the date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts a plain date or any instant form, keeping the date part.
func ParseDate(s string) (Date, error) {
	t, err := parseFlexible(s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalYAML() (any, error) {
	return timestampNode(d.String()), nil
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateTime is an instant, kept in UTC.
type DateTime struct {
	time.Time
}

// NewDateTime converts t to UTC.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t.UTC()}
}

// ParseDateTime accepts RFC 3339, a zone-less date and time (read as UTC) or
// a plain date (midnight UTC).
func ParseDateTime(s string) (DateTime, error) {
	t, err := parseFlexible(s)
	if err != nil {
		return DateTime{}, err
	}
	return NewDateTime(t), nil
}

func (d DateTime) String() string {
	return d.Format(time.RFC3339Nano)
}

func (d DateTime) MarshalYAML() (any, error) {
	return timestampNode(d.String()), nil
}

func (d *DateTime) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDateTime(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func parseFlexible(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expecting a date, a date and time, or an RFC 3339 timestamp: %q", s)
}

// timestampNode emits value as a plain, untagged YAML timestamp.
func timestampNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: value}
}
