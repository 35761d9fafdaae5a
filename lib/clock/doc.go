// Package clock implements the simulated date-time used by the library system.
// All timestamps in the domain (registrations, visits, loans, fines) are taken
// from a Clock instance, never from the wall clock. The Clock only moves
// forward, in whole days and hours, in response to an explicit advance request.
//
// The package also provides the Time and Date value objects the rest of the
// system formats and compares with:
//
//   - Time: hours, minutes and seconds of a day ("HH:MM:SS")
//   - Date: a calendar date plus a time of day ("YYYY/MM/DD HH:MM:SS")
//
// Both are plain immutable values; arithmetic returns new values.
package clock
