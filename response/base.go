package response

// Transaction status literals the gateway reports. Comparison is
// case-sensitive.
const (
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusFailed    = "Failed"
)

const successStatusCode = "0000"

// Base carries the accessors shared by every response kind.
type Base struct {
	data Payload
}

// Raw exposes the underlying payload untouched.
func (b Base) Raw() Payload {
	return b.data
}

// IsSuccess reports whether statusCode is exactly "0000". A payload
// missing the field counts as failure.
func (b Base) IsSuccess() bool {
	code, ok := b.data.String("statusCode")
	return ok && code == successStatusCode
}

func (b Base) HasError() bool {
	return !b.IsSuccess()
}

func (b Base) StatusCode() (string, bool) {
	return b.data.String("statusCode")
}

func (b Base) StatusMessage() (string, bool) {
	return b.data.String("statusMessage")
}

func (b Base) ErrorCode() (string, bool) {
	return b.data.String("errorCode")
}

// ErrorMessage prefers the explicit errorMessage field, falling back to
// statusMessage.
func (b Base) ErrorMessage() (string, bool) {
	return b.data.firstString("errorMessage", "statusMessage")
}

func (b Base) transactionStatus() (string, bool) {
	return b.data.String("transactionStatus")
}
