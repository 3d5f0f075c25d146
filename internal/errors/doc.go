// Package errors provides the structured error type shared by every layer of
// vagabond-api.
//
// Errors carry a Code, a user-facing message, an optional cause, and metadata:
//
//	err := errors.InvalidArgumentf("power rolls must be an ability or test, got %q", t)
//	err := errors.FailedPrecondition("roll already evaluated").
//	    WithMeta("formula", roll.Formula())
//
// Wrapping keeps the original code so callers can still branch on it:
//
//	if err := repo.Set(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to store hero tokens")
//	}
//
//	if errors.IsPermissionDenied(err) {
//	    // only the director may update malice
//	}
//
// Config validation uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Dialog == nil {
//	    vb.RequiredField("Dialog")
//	}
//	return vb.Build()
//
// The gRPC transport converts errors with ToGRPCError so codes survive the
// wire, and FromGRPCError turns them back on the client side.
//
// Layer guidelines:
//   - Repositories return NotFound / InvalidArgument and wrap Redis failures.
//   - Orchestrators return InvalidArgument for contract violations,
//     FailedPrecondition for lifecycle violations (re-evaluating a roll) and
//     PermissionDenied when a non-director makes a privileged call.
//   - Handlers convert with ToGRPCError and never log expected codes as errors.
package errors
