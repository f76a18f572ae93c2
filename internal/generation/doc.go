// Package generation turns a free-text language model into a dependable
// source of structured brand kits.
//
// A Client builds one completion request per call (a fixed system
// instruction, a schema description rendered from a declarative field table,
// and the caller's BrandInputs as a JSON payload), sends it to a Provider,
// and reduces the reply to either a schema-valid value or a classified
// *Error. Full-mode results are then stamped with an identifier and creation
// time by an Assembler.
//
// The package holds no state across calls and performs no retries. Retry,
// persistence and metrics belong to the caller.
package generation
