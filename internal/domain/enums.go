package domain

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusOpen               Status = "OPEN"
	StatusUnderInvestigation Status = "UNDER_INVESTIGATION"
	StatusClosed             Status = "CLOSED"
)

var Statuses = []Status{StatusOpen, StatusUnderInvestigation, StatusClosed}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type EventType string

const (
	EventTheft              EventType = "THEFT"
	EventBurglary           EventType = "BURGLARY"
	EventRobbery            EventType = "ROBBERY"
	EventAssault            EventType = "ASSAULT"
	EventVandalism          EventType = "VANDALISM"
	EventFraud              EventType = "FRAUD"
	EventSuspiciousActivity EventType = "SUSPICIOUS_ACTIVITY"
	EventOther              EventType = "OTHER"
)

var EventTypes = []EventType{
	EventTheft, EventBurglary, EventRobbery, EventAssault,
	EventVandalism, EventFraud, EventSuspiciousActivity, EventOther,
}

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderOther   Gender = "OTHER"
	GenderUnknown Gender = "UNKNOWN"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther, GenderUnknown}

func ParseStatus(raw string) (Status, error) {
	return parseEnum(raw, "status", Statuses)
}

func ParsePriority(raw string) (Priority, error) {
	return parseEnum(raw, "priority", Priorities)
}

func ParseEventType(raw string) (EventType, error) {
	return parseEnum(raw, "event type", EventTypes)
}

func ParseGender(raw string) (Gender, error) {
	return parseEnum(raw, "gender", Genders)
}

// parseEnum accepts any casing and "-", "_" or " " as word separators, so
// "under-investigation" and "Under Investigation" both map to UNDER_INVESTIGATION.
func parseEnum[T ~string](raw, name string, allowed []T) (T, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for _, v := range allowed {
		if string(v) == key {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q", ErrInvalidInput, name, raw)
}
