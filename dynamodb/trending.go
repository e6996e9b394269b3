package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"cinefind/trending"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// All entries share one partition on the count index so a single Query
// returns them ordered by count.
const trendingBucket = "all"

// TrendingAPI is the subset of *dynamodb.Client used by TrendingRepository.
type TrendingAPI interface {
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// TrendingRepository keeps one item per search term, keyed by search_term,
// with a global secondary index on (bucket, count).
type TrendingRepository struct {
	client TrendingAPI
	table  string
	index  string
}

type trendingItem struct {
	SearchTerm string `dynamodbav:"search_term"`
	Count      int64  `dynamodbav:"count"`
	MovieID    int    `dynamodbav:"movie_id"`
	PosterURL  string `dynamodbav:"poster_url"`
}

func NewTrendingRepository(client TrendingAPI, table, index string) *TrendingRepository {
	return &TrendingRepository{
		client: client,
		table:  table,
		index:  index,
	}
}

// Increment is a single conditional-free update: ADD creates the counter at
// one when the item does not exist, and if_not_exists keeps the first movie.
func (r *TrendingRepository) Increment(ctx context.Context, e trending.Entry) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"search_term": &types.AttributeValueMemberS{Value: e.SearchTerm},
		},
		UpdateExpression: aws.String(
			"SET #movie = if_not_exists(#movie, :movie), #poster = if_not_exists(#poster, :poster), #bucket = :bucket ADD #count :one",
		),
		ExpressionAttributeNames: map[string]string{
			"#movie":  "movie_id",
			"#poster": "poster_url",
			"#bucket": "bucket",
			"#count":  "count",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":movie":  &types.AttributeValueMemberN{Value: strconv.Itoa(e.MovieID)},
			":poster": &types.AttributeValueMemberS{Value: e.PosterURL},
			":bucket": &types.AttributeValueMemberS{Value: trendingBucket},
			":one":    &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb: increment trending: %w", err)
	}

	return nil
}

func (r *TrendingRepository) Top(ctx context.Context, limit int) ([]trending.Entry, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}
	if err := validateIndex(r.index); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []trending.Entry{}, nil
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &r.table,
		IndexName:              &r.index,
		KeyConditionExpression: aws.String("#bucket = :bucket"),
		ExpressionAttributeNames: map[string]string{
			"#bucket": "bucket",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bucket": &types.AttributeValueMemberS{Value: trendingBucket},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: query trending: %w", err)
	}

	var items []trendingItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("dynamodb: unmarshal trending: %w", err)
	}

	entries := make([]trending.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, trending.Entry{
			SearchTerm: item.SearchTerm,
			Count:      item.Count,
			MovieID:    item.MovieID,
			PosterURL:  item.PosterURL,
		})
	}
	return entries, nil
}
