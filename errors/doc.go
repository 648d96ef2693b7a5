/*
Package errors provides semantic error types for posestore.

An import aborts on the first of three failures, each with its own type:

	FetchError  - the source location could not be retrieved
	ParseError  - the body is not valid JSON or not a top-level object
	WriteError  - the document store rejected an upsert

Store reads add NotFoundError, and configuration checks use ValidationError.
Every type matches its sentinel through errors.Is:

	var (
	    ErrFetch        = errors.New("fetch failed")
	    ErrParse        = errors.New("parse failed")
	    ErrWrite        = errors.New("write failed")
	    ErrNotFound     = errors.New("document not found")
	    ErrInvalidInput = errors.New("invalid input")
	)

Usage:

	report, err := imp.Run(ctx, "static/data/joint_angle.json")
	if errors.IsWriteError(err) {
	    // report.Written lists the postures stored before the failure
	}

FetchError, ParseError and WriteError unwrap to their underlying cause.
*/
package errors
