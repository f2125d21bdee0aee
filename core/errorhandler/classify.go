package errorhandler

import "net/http"

// Category is the disposition of a failed request.
type Category int

const (
	// ServerError covers everything that is not a client error or an
	// active maintenance condition, including an absent status. By policy
	// it is unrecoverable: the process restarts after responding.
	ServerError Category = iota

	// ClientError covers 4xx statuses. Presumed caused by the caller and
	// never fatal to the service — otherwise a malformed request would be
	// a remote restart switch.
	ClientError

	// Maintenance is the synthetic 503 produced while maintenance mode is
	// active. Recoverable by definition.
	Maintenance
)

func (c Category) String() string {
	switch c {
	case ClientError:
		return "client_error"
	case Maintenance:
		return "maintenance"
	default:
		return "server_error"
	}
}

// Classify maps a status code to its category. Pure and total: any status
// outside 4xx that is not an active-maintenance 503 is server-class,
// including zero for an absent status.
func Classify(status int, maintenanceActive bool) Category {
	switch {
	case status >= 400 && status <= 499:
		return ClientError
	case status == http.StatusServiceUnavailable && maintenanceActive:
		return Maintenance
	default:
		return ServerError
	}
}

// Recoverable reports whether the service should keep serving traffic
// after responding to an error of this category.
func (c Category) Recoverable() bool {
	return c == ClientError || c == Maintenance
}
