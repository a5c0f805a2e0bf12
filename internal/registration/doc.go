// Package registration submits targets to a running proxy's admin listener.
//
// A [Service] exposes the two creation operations the proxy offers, one per
// [target.Category]. [HTTPService] implements them over HTTP; [Client] picks
// the operation for a category, records metrics and logs the outcome.
//
// Each call is made exactly once. There is no retry and no unregister: a
// target that was registered stays registered on the proxy even if it is later
// removed from the local document.
//
// Rejections and transport failures are reported as [*RegistrationError],
// whose Error method returns the server's message verbatim so it can be shown
// to the operator as-is.
package registration
