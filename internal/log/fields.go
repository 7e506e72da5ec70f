// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldRequestID = "request_id"
	FieldComponent = "component"
	FieldEvent     = "event"
	FieldOperation = "operation"

	// Guide fields
	FieldChannelID  = "channel_id"
	FieldScheduleID = "schedule_id"
	FieldKind       = "kind"
	FieldPage       = "page"
	FieldDate       = "date"
	FieldRevision   = "revision"
	FieldEntries    = "entries"

	// Transport fields
	FieldPort  = "port"
	FieldBytes = "bytes"
	FieldURL   = "url"
	FieldPath  = "path"
)
