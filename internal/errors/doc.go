// Package errors provides coded errors for the randomizer core.
//
// Every failure that leaves a generation call carries a Code:
//   - InvalidArgument: a bad option value or malformed declaration
//   - FailedPrecondition: a declaration that references an unknown name
//   - ResourceExhausted: a topology resample loop ran past its bound
//   - NotFound: a stored slot does not exist
//   - Internal: storage or transport failures
//
// # Basic Usage
//
//	err := errors.Configuration("unknown goal %q", goal)
//	err := errors.GenerationExhausted("coordinates", 1000)
//
//	if errors.IsConfiguration(err) {
//	    // abort this player only
//	}
//
// Wrapping keeps the code and metadata of the inner error:
//
//	if err := repo.Create(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to store slot")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateEnum("goal", opts.Goal, goals, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err). The code and metadata travel as a
// structpb.Struct status detail so errors.FromGRPCError restores them on the
// client side.
package errors
