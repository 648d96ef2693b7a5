/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	storeerrors "github.com/suparena/posestore/errors"
	"github.com/suparena/posestore/registry"
)

// Attribute names written on every item besides the index map keys.
const (
	AttrEntityType = "EntityType"
	AttrCollection = "Collection"
	AttrDocumentID = "DocumentID"
	AttrBody       = "Body"

	entityTypeDocument = "Document"
)

// API is the subset of the DynamoDB client used by DocumentStore.
// *dynamodb.Client satisfies it.
type API interface {
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// ClientConfig holds the settings used to build a DynamoDB client.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, e.g. http://localhost:8000 for DynamoDB Local.
	Endpoint string
}

// DocumentStore implements datastore.Store by using AWS DynamoDB as the underlying data store.
type DocumentStore struct {
	client    API
	tableName string
	logger    *zap.Logger
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(d *DocumentStore) {
		if logger != nil {
			d.logger = logger
		}
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros replaces {Name} macros in every template with vars[Name].
// Unknown macros expand to the empty string.
func expandMacros(indexMap map[string]string, vars map[string]string) map[string]string {
	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			return vars[strings.Trim(macro, "{}")]
		})
	}
	return res
}

func documentVars(collection, documentID string) map[string]string {
	return map[string]string{
		AttrCollection: collection,
		AttrDocumentID: documentID,
	}
}

// buildKey builds the primary key of a document from its collection's index map.
func buildKey(collection, documentID string) (map[string]types.AttributeValue, error) {
	expanded := expandMacros(registry.IndexMapFor(collection), documentVars(collection, documentID))
	return buildKeyFromExpanded(expanded)
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It assumes that the expanded map has valid non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// buildItem assembles the full item for a document: expanded index map
// attributes, bookkeeping attributes and the JSON body as a native attribute.
func buildItem(collection, documentID string, value json.RawMessage) (map[string]types.AttributeValue, error) {
	var body any
	if err := json.Unmarshal(value, &body); err != nil {
		return nil, storeerrors.NewValidationError(AttrBody, "value is not valid JSON: "+err.Error())
	}

	bodyAttr, err := attributevalue.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document body: %w", err)
	}

	expanded := expandMacros(registry.IndexMapFor(collection), documentVars(collection, documentID))
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return nil, err
	}

	item := make(map[string]types.AttributeValue, len(expanded)+4)
	for k, v := range expanded {
		if v == "" {
			// Sparse secondary index attribute
			continue
		}
		item[k] = &types.AttributeValueMemberS{Value: v}
	}
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: entityTypeDocument}
	item[AttrCollection] = &types.AttributeValueMemberS{Value: collection}
	item[AttrDocumentID] = &types.AttributeValueMemberS{Value: documentID}
	item[AttrBody] = bodyAttr
	return item, nil
}

// decodeBody converts a stored Body attribute back to JSON.
func decodeBody(attr types.AttributeValue) (json.RawMessage, error) {
	if attr == nil {
		return json.RawMessage("null"), nil
	}
	var body any
	if err := attributevalue.Unmarshal(attr, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document body: %w", err)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document body: %w", err)
	}
	return raw, nil
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used
// when both keys are set; otherwise the default AWS credential chain applies.
func NewDynamoDBClient(ctx context.Context, cfg ClientConfig) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return client, nil
}

// New constructs a DocumentStore over an existing client.
func New(client API, tableName string, opts ...Option) *DocumentStore {
	d := &DocumentStore{
		client:    client,
		tableName: tableName,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDynamodbDocumentStore builds a client from cfg and constructs a DocumentStore for tableName.
func NewDynamodbDocumentStore(ctx context.Context, cfg ClientConfig, tableName string, opts ...Option) (*DocumentStore, error) {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	d := New(client, tableName, opts...)
	d.logger.Debug("DynamoDB client initialized",
		zap.String("table", tableName),
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.Endpoint))
	return d, nil
}

// TableName returns the table the store writes to.
func (d *DocumentStore) TableName() string {
	return d.tableName
}

// Upsert writes the document, replacing any existing item with the same key.
func (d *DocumentStore) Upsert(ctx context.Context, collection, documentID string, value json.RawMessage) error {
	item, err := buildItem(collection, documentID, value)
	if err != nil {
		return err
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Get retrieves a document body. A missing item yields a NotFoundError.
func (d *DocumentStore) Get(ctx context.Context, collection, documentID string) (json.RawMessage, error) {
	key, err := buildKey(collection, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, storeerrors.NewNotFoundError(collection, documentID)
	}

	return decodeBody(out.Item[AttrBody])
}

// Delete removes a document.
func (d *DocumentStore) Delete(ctx context.Context, collection, documentID string) error {
	key, err := buildKey(collection, documentID)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       key,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("delete condition failed: %w", err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}
