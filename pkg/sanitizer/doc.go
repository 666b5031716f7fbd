// Package sanitizer normalizes account and review input before validation
// and storage.
//
// All normalization functions are idempotent. Invalid input yields an empty
// string or an empty slice rather than an error, leaving rejection to the
// validators.
//
// Normalization includes:
//   - Phone numbers: E.164 (+[country][number]), local numbers resolved against the supported regions
//   - Emails: trimmed and lowercased
//   - Names and addresses: whitespace collapsed and trimmed
//   - Free text: trimmed, inner whitespace preserved
//   - Skills and languages: lowercased labels, duplicates and blanks removed
//   - Photo URLs: scheme enforced, host lowercased, path preserved
package sanitizer
