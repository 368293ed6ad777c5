package errors

import "errors"

var (
	// ErrTaskNotFound indicates that the specified task was not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrClearanceNotFound indicates that the specified clearance request was not found
	ErrClearanceNotFound = errors.New("clearance request not found")

	// ErrProjectNotFound indicates that the specified project was not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrClientNotFound indicates that the specified client was not found
	ErrClientNotFound = errors.New("client not found")

	// ErrNotificationNotFound indicates that the specified notification was not found
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrMemberNotFound indicates that the user has no staff directory entry
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvoiceNotFound indicates that the specified invoice was not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrDocumentNotFound indicates that the specified document was not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrMeetingNotFound indicates that the specified meeting log was not found
	ErrMeetingNotFound = errors.New("meeting log not found")

	// ErrImageNotFound indicates that the specified project image was not found
	ErrImageNotFound = errors.New("project image not found")
)
