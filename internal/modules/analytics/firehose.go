package analytics

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/firehose"
	"github.com/aws/aws-sdk-go-v2/service/firehose/types"
)

// FirehoseSink delivers records to a named Kinesis Firehose delivery stream.
type FirehoseSink struct {
	client *firehose.Client
	stream string
}

// NewFirehoseSink wraps an existing Firehose client.
func NewFirehoseSink(client *firehose.Client, streamName string) *FirehoseSink {
	return &FirehoseSink{client: client, stream: streamName}
}

// NewFirehoseClient builds a Firehose client from an AWS config, honoring an
// optional endpoint override (localstack in development).
func NewFirehoseClient(awsCfg aws.Config, endpoint string) *firehose.Client {
	return firehose.NewFromConfig(awsCfg, func(o *firehose.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func (s *FirehoseSink) Put(ctx context.Context, record []byte) error {
	_, err := s.client.PutRecord(ctx, &firehose.PutRecordInput{
		DeliveryStreamName: aws.String(s.stream),
		Record:             &types.Record{Data: record},
	})
	return err
}
