// Package sanitizer normalizes user-submitted form values before they are
// sent to the booking API.
package sanitizer
