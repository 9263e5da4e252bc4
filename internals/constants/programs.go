package constants

const (
	ProgramOL = "OL"
	ProgramAL = "AL"
)

// AL streams as stored on courses and subjects.
var ALStreams = []string{"biology", "maths", "tech", "art", "commerce"}

// AL streams as typed on the public registration form.
var RegistrationStreams = []string{"Biology", "Maths", "Tech", "Art", "Commerce"}

var RegistrationDurations = []string{"6 month", "1 year"}

// Course durations and the number of monthly installments each one bills.
const (
	DurationOneYear    = "1 Year"
	DurationSixMonths  = "6 Months"
	MonthsPerYearPlan  = 12
	MonthsPerShortPlan = 6
)

const (
	EnrollmentActive   = "active"
	EnrollmentInactive = "inactive"
)

const (
	PaymentUnpaid     = "Unpaid"
	PaymentIncomplete = "Incomplete"
	PaymentPaid       = "Paid"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

const SyllabusCompleted = "completed"

func IsALStream(s string) bool {
	for _, v := range ALStreams {
		if v == s {
			return true
		}
	}
	return false
}
