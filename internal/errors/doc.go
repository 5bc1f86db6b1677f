// Package errors provides the structured error vocabulary shared by every
// layer of the dungeon run service.
//
// Errors carry a Code, a user-facing message, an optional cause and optional
// metadata. The code decides the HTTP status the handler layer returns:
//
//	InvalidArgument     400  malformed or missing request fields
//	FailedPrecondition  400  operation illegal for the run's current status
//	NotFound            404  unknown run
//	Aborted             409  run was modified concurrently (stale version)
//	Unavailable         503  dependency not ready
//	Internal            500  everything else
//
// # Basic Usage
//
//	err := errors.NotFoundf("dungeon run %s not found", runID)
//	err := errors.FailedPrecondition("dungeon run is not in progress").
//	    WithMeta("status", run.Status)
//
// Wrapping preserves the code of the wrapped error:
//
//	if err := repo.Update(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to persist choice")
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("heroId", input.HeroID, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer returns NotFound/AlreadyExists/Aborted and wraps driver
// errors. Orchestrators validate input (InvalidArgument) and run status
// (FailedPrecondition). Handlers convert with ToHTTP and log Internal errors.
package errors
