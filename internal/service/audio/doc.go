// Package audio abstracts the alarm sound device.
//
// CommandPlayer shells out to a user-configured program; Nop keeps the alarm
// silent. The session service calls Play exactly once per alarm transition
// and Stop whenever a new lap is recorded or the session resets.
package audio
