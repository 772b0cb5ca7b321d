package domain

// Default values
const (
	DefaultSlotCapacity = 1
)

// Business validation constants
const (
	MinSlotCapacity      = 1
	MaxRequesterNameLen  = 120
	MaxRequesterPhoneLen = 32
	MaxRequesterEmailLen = 254
	MaxMessageLength     = 1000
)

// Time format constants
const (
	TimeFormat = "2006-01-02T15:04:05Z07:00" // RFC 3339
)
