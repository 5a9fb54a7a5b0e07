package service

import (
	"time"

	"library_backend/internals/configs"
)

// Policy is the lending configuration the loan service applies.
type Policy struct {
	FinePerDay            int64
	DefaultLoanPeriodDays int
	MaxBooksPerReader     int
	EnforceMaxBooks       bool
	ReminderDaysBefore    int
	Location              *time.Location
}

func PolicyFromConfig(c configs.LibraryConfig) Policy {
	return Policy{
		FinePerDay:            c.FinePerDay,
		DefaultLoanPeriodDays: c.DefaultLoanPeriodDays,
		MaxBooksPerReader:     c.MaxBooksPerReader,
		EnforceMaxBooks:       c.EnforceMaxBooks,
		ReminderDaysBefore:    c.ReminderDaysBefore,
		Location:              c.Location(),
	}
}

func DefaultPolicy() Policy {
	return PolicyFromConfig(configs.DefaultLibraryConfig())
}
