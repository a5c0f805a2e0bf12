// Package wizard drives the targets step of the proxy setup wizard.
//
// A [Controller] owns the configuration document for one setup session and
// moves between three steps: listener, targets and complete. Only the
// targets step has behavior here. [Controller.AddTarget] runs the pipeline
// validate, register, append:
//
//  1. The draft is validated. Errors stop the pipeline before any network
//     call; warnings (such as a reused name) are returned but do not block.
//  2. The target is registered with the running proxy, once, with no retry.
//  3. Only after the proxy accepted it is the target appended to the
//     document and the draft reset.
//
// At most one registration is in flight at a time, enforced by a [Gate]. If
// the operator leaves the targets step while a registration is pending, the
// call runs to completion but its result is discarded.
//
// Removing a target is local only. The proxy keeps any target it already
// accepted; there is no unregister call.
package wizard
