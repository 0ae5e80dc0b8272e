package models

// Ledger-DTOs shared between the jsonapi-managers and the fuelstats-package.
// Dates are stored as Millisecond-Unix-Timestamps at UTC-midnight, so two entries
// on the same calendar day always compare equal.

import (
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
)

// FuelRecord represents a FuelRecords-table-entry (one refueling).
type FuelRecord struct {
	Id            S.NInt64
	OwnerId       S.NString
	DateMillis    S.NInt64
	Km            S.NInt64
	PricePerLiter S.NFloat64
	TotalCost     S.NFloat64
	Liters        S.NFloat64
	FullTank      S.NBool
	Notes         S.NString
}

// MaintenanceRecord represents a MaintenanceRecords-table-entry.
// ExpiryKm / ExpiryDateMillis define an optional forward-looking deadline;
// both 0 means the record carries no deadline (or it was resolved).
type MaintenanceRecord struct {
	Id               S.NInt64
	OwnerId          S.NString
	DateMillis       S.NInt64
	Km               S.NInt64
	ExpenseType      S.NString
	Cost             S.NFloat64
	Description      S.NString
	ExpiryKm         S.NInt64
	ExpiryDateMillis S.NInt64
}

// Reminder represents a routine maintenance reminder (e.g. "check tyre pressure
// every 5000 km or 180 days").
type Reminder struct {
	Id                  S.NInt64
	OwnerId             S.NString
	Title               S.NString
	FrequencyKm         S.NInt64
	FrequencyDays       S.NInt64
	LastKmCheck         S.NInt64
	LastDateCheckMillis S.NInt64
	Disabled            S.NInt64
}

// Settings holds the per-owner thresholds used by validation & reconciliation.
type Settings struct {
	Id             S.NInt64
	OwnerId        S.NString
	MaxTotalCost   S.NFloat64
	CostTolerance  S.NFloat64
	PriceTolerance S.NFloat64
}
