/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
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

	"github.com/suparena/databag"
	"github.com/suparena/databag/codec"
	"github.com/suparena/databag/datastore"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/registry"
)

// Item attribute names.
const (
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrEntityType = "EntityType"
	AttrOwner      = "Owner"
	AttrEntries    = "Entries"
)

// Default key templates. {Owner} is replaced with the owner id.
const (
	DefaultPKTemplate = "BAG#{Owner}"
	DefaultSKTemplate = "BAG"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// ClientConfig holds what NewDynamoDBClient needs to reach a table.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// DynamodbDataStore implements datastore.DataStore with one item per owner.
type DynamodbDataStore struct {
	client    API
	tableName string
	indexMap  map[string]string
	codec     *codec.Codec
	logger    *zap.Logger
}

var _ datastore.DataStore = (*DynamodbDataStore)(nil)

// Option configures a DynamodbDataStore.
type Option func(*DynamodbDataStore)

// WithKeyTemplates sets the PK and SK templates.
func WithKeyTemplates(pk, sk string) Option {
	return func(d *DynamodbDataStore) {
		d.indexMap = map[string]string{AttrPK: pk, AttrSK: sk}
	}
}

// WithRegistry sets the registry payload types are resolved with.
func WithRegistry(reg *registry.Registry) Option {
	return func(d *DynamodbDataStore) {
		d.codec = codec.New(reg)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *DynamodbDataStore) {
		d.logger = logger
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// ownerKey is the macro source for key templates.
type ownerKey struct {
	Owner string
}

func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		var missing []string
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")
			if s, ok := av[key].(*types.AttributeValueMemberS); ok {
				return s.Value
			}
			missing = append(missing, key)
			return ""
		})
		if len(missing) > 0 {
			return nil, errors.NewValidationError(fieldName, fmt.Sprintf("unknown macros %v in template %q", missing, template))
		}
		res[fieldName] = expanded
	}
	return res, nil
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used
// when an access key is given; otherwise the default AWS credential chain.
func NewDynamoDBClient(ctx context.Context, cfg ClientConfig) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewDynamodbDataStore constructs a store backed by a new DynamoDB client.
func NewDynamodbDataStore(ctx context.Context, cfg ClientConfig, tableName string, opts ...Option) (*DynamodbDataStore, error) {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	d := NewWithClient(client, tableName, opts...)
	d.logger.Info("DynamoDB client initialized",
		zap.String("table", tableName),
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.Endpoint),
	)
	return d, nil
}

// NewWithClient constructs a store over an existing client.
func NewWithClient(client API, tableName string, opts ...Option) *DynamodbDataStore {
	d := &DynamodbDataStore{
		client:    client,
		tableName: tableName,
		indexMap:  map[string]string{AttrPK: DefaultPKTemplate, AttrSK: DefaultSKTemplate},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.codec == nil {
		d.codec = codec.New(nil)
	}
	return d
}

// key builds the primary key of owner's item.
func (d *DynamodbDataStore) key(owner string) (map[string]types.AttributeValue, error) {
	if owner == "" {
		return nil, errors.NewValidationError("owner", "must not be empty")
	}
	expanded, err := expandMacros(d.indexMap, ownerKey{Owner: owner})
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expanded)
}

// Load retrieves the bag stored for owner.
func (d *DynamodbDataStore) Load(ctx context.Context, owner string) (*databag.Container, error) {
	key, err := d.key(owner)
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
		return nil, errors.NewNotFoundError(datastore.EntityType, owner)
	}

	var entityType string
	if attr, ok := out.Item[AttrEntityType]; ok {
		if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
			return nil, fmt.Errorf("failed to unmarshal EntityType: %w", err)
		}
	}
	if entityType != datastore.EntityType {
		return nil, errors.NewValidationError(AttrEntityType, fmt.Sprintf("item for %q has entity type %q", owner, entityType))
	}

	bag, err := d.codec.UnmarshalAttributes(out.Item[AttrEntries])
	if err != nil {
		return nil, fmt.Errorf("failed to decode bag for %q: %w", owner, err)
	}
	d.logger.Debug("bag loaded", zap.String("owner", owner), zap.Int("entries", bag.Len()))
	return bag, nil
}

// Save writes the bag for owner, replacing any previous item.
func (d *DynamodbDataStore) Save(ctx context.Context, owner string, bag *databag.Container) error {
	if bag == nil {
		return errors.NewValidationError("bag", "must not be nil")
	}
	key, err := d.key(owner)
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}
	entries, err := d.codec.MarshalAttributes(bag)
	if err != nil {
		return fmt.Errorf("failed to encode bag for %q: %w", owner, err)
	}

	item := map[string]types.AttributeValue{
		AttrEntityType: &types.AttributeValueMemberS{Value: datastore.EntityType},
		AttrOwner:      &types.AttributeValueMemberS{Value: owner},
		AttrEntries:    entries,
	}
	for k, v := range key {
		item[k] = v
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.Debug("bag saved", zap.String("owner", owner), zap.Int("entries", bag.Len()))
	return nil
}

// Delete removes the item for owner.
func (d *DynamodbDataStore) Delete(ctx context.Context, owner string) error {
	key, err := d.key(owner)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           &d.tableName,
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewNotFoundError(datastore.EntityType, owner)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded[AttrPK]
	sk, okSK := expanded[AttrSK]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, errors.NewValidationError("key", "expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: pk},
		AttrSK: &types.AttributeValueMemberS{Value: sk},
	}, nil
}
