// Package websocket pushes dataset reload announcements to browser clients.
// The hub carries exactly one frame type: a snapshot-replaced notice with
// the new snapshot's id, years and row count. Clients never send anything
// the server acts on; the read pump exists to run the pong deadline.
package websocket
