// Package acl is the anti-corruption layer between the gallery and its two
// remote services: the quote API and the submission endpoint.
//
// Adapters here own the external wire formats. External DTOs stay unexported,
// responses are translated into domain types, and every failure is reported
// as a domain error:
//
//   - transport errors and timeouts become [domain.ErrUnavailable]
//   - non-2xx responses become [domain.ErrUnavailable], carrying the upstream
//     error message when the body parses as an error envelope
//   - undecodable bodies become [domain.ErrUnavailable]
//
// The gallery treats every error from this package the same way (fallback
// data for fetches, a generic alert for submissions), so the mapping favours
// a readable reason in logs over a fine-grained taxonomy.
package acl
