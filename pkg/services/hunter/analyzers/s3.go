package analyzers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// BucketScanner flags buckets whose ACL grants access to AllUsers or
// AuthenticatedUsers. Buckets whose ACL cannot be read (no permission) are
// skipped; only the bucket listing itself failing marks the category.
type BucketScanner struct {
	client S3API
}

func NewBucketScanner(client S3API) *BucketScanner {
	return &BucketScanner{client: client}
}

func (s *BucketScanner) Category() domain.ResourceCategory {
	return domain.CategoryObjectStore
}

func (s *BucketScanner) Title() string {
	return "Public S3 buckets (check!)"
}

func (s *BucketScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	resp, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	var items []string
	for _, bucket := range resp.Buckets {
		name := aws.ToString(bucket.Name)
		acl, err := s.client.GetBucketAcl(ctx, &s3.GetBucketAclInput{Bucket: bucket.Name})
		if err != nil {
			continue
		}
		for _, grant := range acl.Grants {
			if grant.Grantee == nil {
				continue
			}
			uri := aws.ToString(grant.Grantee.URI)
			if strings.HasSuffix(uri, "AllUsers") || strings.HasSuffix(uri, "AuthenticatedUsers") {
				items = append(items, name)
				break
			}
		}
	}

	return []domain.Section{{Category: s.Category(), Title: s.Title(), Items: items}}, nil
}
