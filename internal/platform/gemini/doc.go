// Package gemini provides a generation.Provider backed by Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the structured generation client to Google's external Gemini
// service. It sends the system instruction and schema description as the
// model's system instruction, the payload as the single user turn, and asks
// for an application/json response. The reply text is returned verbatim:
// parsing and validation are the generation client's job.
//
// Safety-blocked candidates are reported as generation.ErrContentBlocked.
// A provider built without an API key reports HasCredential() == false and
// never contacts the API.
package gemini
