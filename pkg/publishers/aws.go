package publishers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
)

const fifoSuffix = ".fifo"

func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// isFIFO reports whether a queue URL or topic ARN names a FIFO destination.
func isFIFO(target string) bool {
	return strings.HasSuffix(target, fifoSuffix)
}

// stringAttributes converts event attributes into the AWS message attribute shape.
func stringAttributes[T any](attrs map[string]string, mk func(string) T) map[string]T {
	out := make(map[string]T, len(attrs))
	for k, v := range attrs {
		out[k] = mk(v)
	}
	return out
}
