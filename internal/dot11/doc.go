// Package dot11 decodes a single IEEE 802.11 MAC frame from a raw byte buffer.
//
// Ownership boundary:
// - bit cursor and fixed-width readers
// - frame control, type and subtype classification
// - conditional field presence (sequence control, address 4, QoS, HT)
// - body and integrity field resolution
//
// The package is pure: it never logs, never allocates shared state and never
// verifies the integrity field. Capture, radiotap stripping and reporting live
// with the callers.
package dot11
