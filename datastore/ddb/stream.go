/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/posestore/storagemodels"
)

// Stream delivers the documents of a collection page by page on a channel.
// The channel is closed when the listing is exhausted, fails, or ctx is done.
func (d *DocumentStore) Stream(ctx context.Context, params *storagemodels.ListParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	options := storagemodels.ApplyStreamOptions(opts...)
	if params != nil && params.PageSize > 0 {
		options.PageSize = params.PageSize
	}

	resultCh := make(chan storagemodels.StreamResult, options.BufferSize)

	go d.streamWorker(ctx, params, options, resultCh)

	return resultCh
}

// streamWorker handles the actual streaming logic
func (d *DocumentStore) streamWorker(
	ctx context.Context,
	params *storagemodels.ListParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult,
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	var streamErrs []error
	startTime := time.Now()

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			Errors:         streamErrs,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	send := func(result storagemodels.StreamResult) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- result:
			return true
		}
	}

	meta := func() storagemodels.StreamMeta {
		return storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()}
	}

	if params == nil {
		send(storagemodels.StreamResult{Error: fmt.Errorf("list requires a collection"), Meta: meta()})
		return
	}
	input, err := d.buildQueryInput(params, options.PageSize)
	if err != nil {
		send(storagemodels.StreamResult{Error: err, Meta: meta()})
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		out, err := d.queryWithRetry(ctx, input, options)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if options.ErrorHandler == nil || !options.ErrorHandler(err) {
				send(storagemodels.StreamResult{Error: fmt.Errorf("query failed: %w", err), Meta: meta()})
				return
			}
			// Handler chose to continue; the same page is requested again.
			streamErrs = append(streamErrs, err)
			continue
		}

		pageNumber++

		for _, item := range out.Items {
			doc, err := itemToDocument(item)
			result := storagemodels.StreamResult{Document: doc, Error: err, Meta: meta()}
			if err != nil {
				streamErrs = append(streamErrs, err)
			}
			if !send(result) {
				return
			}
			itemIndex++
			if params.Limit > 0 && itemIndex >= int64(params.Limit) {
				reportProgress()
				return
			}
		}

		reportProgress()

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	d.logger.Debug("stream completed",
		zap.String("collection", params.Collection),
		zap.Int64("items", itemIndex),
		zap.Int("pages", pageNumber))
}

// queryWithRetry executes a query, retrying throttling and server errors
// with a linear backoff.
func (d *DocumentStore) queryWithRetry(
	ctx context.Context,
	input *sdk.QueryInput,
	options storagemodels.StreamOptions,
) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := d.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			d.logger.Debug("retrying query", zap.Int("attempt", attempt+1), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var pte *types.ProvisionedThroughputExceededException
	var rle *types.RequestLimitExceeded
	var ise *types.InternalServerError
	if errors.As(err, &pte) || errors.As(err, &rle) || errors.As(err, &ise) {
		return true
	}

	// Check for AWS SDK retryable errors
	var retryable interface{ IsRetryable() bool }
	if errors.As(err, &retryable) {
		return retryable.IsRetryable()
	}

	return false
}
