// models/request_status.go
package models

// RequestStatus is one named position in the custom cake request lifecycle.
type RequestStatus string

const (
	RequestStatusPending         RequestStatus = "pending"
	RequestStatusQuoted          RequestStatus = "quoted"
	RequestStatusApproved        RequestStatus = "approved"
	RequestStatusDesignConfirmed RequestStatus = "design-confirmed"
	RequestStatusInProduction    RequestStatus = "in-production"
	RequestStatusReady           RequestStatus = "ready"
	RequestStatusCompleted       RequestStatus = "completed"
	RequestStatusCancelled       RequestStatus = "cancelled"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusQuoted, RequestStatusApproved,
		RequestStatusDesignConfirmed, RequestStatusInProduction,
		RequestStatusReady, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}
