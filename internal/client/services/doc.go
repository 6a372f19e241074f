// Package services contains the application services of the client:
//
//   - AuthService: login, registration (with local validation) and logout
//     over the shared session.Holder;
//   - Verifier: the hardware verification sequence run once per session;
//   - AccountService: profile, subscription, ban and payment calls for a
//     verified session.
//
// Expected failures are returned as typed errors (ValidationError,
// AuthError, FingerprintFetchError, FingerprintMismatchError, UnknownError)
// carrying the message to show; use errors.As or UserMessage.
package services
