package errors

import stdErrors "errors"

// Messages shown to users. Raw transport errors never reach the screen.
const (
	GenericFetchMessage = "An error occurred while fetching movies"
	GenericAuthMessage  = "An error occurred. Please try again."
	NoResultsMessage    = "No movies found"
	RateLimitMessage    = "Movie API request limit reached. Please try again later."
)

// UserMessage maps err to the text the UI displays for it.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		valErr  *ValidationError
		authErr *AuthError
		nfErr   *NotFoundError
	)
	switch {
	case stdErrors.As(err, &valErr):
		return "Please correct the highlighted fields."
	case stdErrors.As(err, &authErr):
		return authErr.Message
	case stdErrors.As(err, &nfErr):
		if nfErr.Message != "" {
			return nfErr.Message
		}
		return NoResultsMessage
	case IsRateLimitError(err):
		return RateLimitMessage
	default:
		return GenericFetchMessage
	}
}
