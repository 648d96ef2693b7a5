/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/posestore/registry"
	"github.com/suparena/posestore/storagemodels"
)

// buildQueryInput turns list parameters into a partition query over the
// collection. An id prefix becomes a begins_with key condition when the SK
// template ends in {DocumentID}, and a filter expression otherwise.
func (d *DocumentStore) buildQueryInput(params *storagemodels.ListParams, pageSize int32) (*sdk.QueryInput, error) {
	if params == nil || params.Collection == "" {
		return nil, fmt.Errorf("list requires a collection")
	}

	indexMap := registry.IndexMapFor(params.Collection)
	if strings.Contains(indexMap["PK"], "{"+AttrDocumentID+"}") {
		return nil, fmt.Errorf("collection %q partitions by document id and cannot be listed", params.Collection)
	}

	expanded := expandMacros(indexMap, documentVars(params.Collection, params.IDPrefix))

	keyCond := "PK = :pk"
	exprVals := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: expanded["PK"]},
	}

	var filter *string
	if strings.HasSuffix(indexMap["SK"], "{"+AttrDocumentID+"}") {
		if sk := expanded["SK"]; sk != "" {
			keyCond += " AND begins_with(SK, :sk)"
			exprVals[":sk"] = &types.AttributeValueMemberS{Value: sk}
		}
	} else if params.IDPrefix != "" {
		filter = aws.String("begins_with(" + AttrDocumentID + ", :prefix)")
		exprVals[":prefix"] = &types.AttributeValueMemberS{Value: params.IDPrefix}
	}

	input := &sdk.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    &keyCond,
		ExpressionAttributeValues: exprVals,
		FilterExpression:          filter,
	}
	if pageSize > 0 {
		input.Limit = aws.Int32(pageSize)
	}
	return input, nil
}

// itemToDocument converts a stored item to a Document.
func itemToDocument(item map[string]types.AttributeValue) (storagemodels.Document, error) {
	var doc storagemodels.Document
	if attr, ok := item[AttrCollection]; ok {
		if err := attributevalue.Unmarshal(attr, &doc.Collection); err != nil {
			return doc, fmt.Errorf("failed to unmarshal %s: %w", AttrCollection, err)
		}
	}
	attr, ok := item[AttrDocumentID]
	if !ok {
		return doc, fmt.Errorf("missing %s attribute in item", AttrDocumentID)
	}
	if err := attributevalue.Unmarshal(attr, &doc.ID); err != nil {
		return doc, fmt.Errorf("failed to unmarshal %s: %w", AttrDocumentID, err)
	}

	body, err := decodeBody(item[AttrBody])
	if err != nil {
		return doc, err
	}
	doc.Body = body
	return doc, nil
}

// List returns the documents of a collection in sort key order.
func (d *DocumentStore) List(ctx context.Context, params *storagemodels.ListParams) ([]storagemodels.Document, error) {
	if params == nil {
		return nil, fmt.Errorf("list requires a collection")
	}
	input, err := d.buildQueryInput(params, params.PageSize)
	if err != nil {
		return nil, err
	}

	var docs []storagemodels.Document
	paginator := sdk.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}

		for _, item := range out.Items {
			doc, err := itemToDocument(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			if params.Limit > 0 && int32(len(docs)) >= params.Limit {
				return docs, nil
			}
		}
	}

	return docs, nil
}
