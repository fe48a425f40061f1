package league

import "errors"

var (
	// ErrInvalidTeamCount is returned when the number of teams is odd or
	// smaller than two.
	ErrInvalidTeamCount = errors.New("invalid team count")

	// ErrInvalidWeekCount is returned when the number of weeks cannot hold a
	// single round robin for the given teams.
	ErrInvalidWeekCount = errors.New("invalid week count")

	// ErrInvalidMatch is returned when a match names the same team twice, or
	// a week is built with the wrong number of matches.
	ErrInvalidMatch = errors.New("invalid match")

	// ErrMalformedExpression is returned when a textual match expression
	// cannot be parsed.
	ErrMalformedExpression = errors.New("malformed match expression")

	// ErrTeamOutOfRange is returned when a team id falls outside [1, n].
	ErrTeamOutOfRange = errors.New("team out of range")

	// ErrInconsistentPreschedule is returned when the fixed weeks cannot be
	// completed into a valid round robin.
	ErrInconsistentPreschedule = errors.New("inconsistent preschedule")
)
