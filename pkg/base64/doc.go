// Package base64 provides base64url encoding and decoding functions
// as defined in RFC 4648 Section 5, the form used for every segment
// of a compact JOSE serialization (RFC 7515, RFC 7516).
//
// The key difference from standard base64 encoding is:
//   - Uses URL-safe characters (- and _ instead of + and /)
//   - Omits padding characters (=) in the encoded output
//   - Automatically handles padding when decoding
//
// http://www.rfc-editor.org/rfc/rfc4648#section-5
package base64
