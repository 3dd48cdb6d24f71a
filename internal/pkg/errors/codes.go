package errors

import "net/http"

var (
	ErrInvalidInput = New(
		"INVALID_INPUT",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = New(
		"INVALID_DATE_RANGE",
		"End date must not be before start date",
		http.StatusBadRequest,
	)

	ErrInvalidTransportType = New(
		"INVALID_TRANSPORT_TYPE",
		"Invalid transport type",
		http.StatusBadRequest,
	)

	ErrEmptyCandidatePool = New(
		"EMPTY_CANDIDATE_POOL",
		"No destinations match the requested city and categories",
		http.StatusUnprocessableEntity,
	)

	ErrItineraryNotFound = New(
		"ITINERARY_NOT_FOUND",
		"Itinerary not found",
		http.StatusNotFound,
	)

	ErrDestinationNotFound = New(
		"DESTINATION_NOT_FOUND",
		"Destination not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Itinerary does not belong to the requesting user",
		http.StatusForbidden,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
