package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "clinicbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultJWTTTL = 7 * 24 * time.Hour

	// Clinic template: 09:00-17:00 UTC, 30-minute slots.
	DefaultClinicOpenHour  = 9
	DefaultClinicCloseHour = 17
	DefaultSlotDurationMin = 30

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultAllowedOrigins = "http://localhost:5173"

	DefaultBookingEventsTopic = "clinic.booking.events"

	DefaultPaginationLimit = 100
)
