// Warmup handling for the serverless function. A scheduled event pings the
// function periodically so translation requests rarely hit a cold start.
package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

const (
	// warmupSource identifies scheduled warmup events.
	warmupSource = "warmup"

	// warmupDelay holds the instance long enough for fanout invocations to
	// land on distinct instances instead of reusing this one.
	warmupDelay = 75 * time.Millisecond
)

// warmupEvent is the scheduled event payload.
type warmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// warmupResponse reports how many instances a warmup event touched.
type warmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instances_warmed"`
}

// isWarmupEvent reports whether the event is a warmup ping rather than a
// translation envelope. The concurrency field is optional; when absent,
// WARMUP_CONCURRENCY from the environment applies.
func isWarmupEvent(event json.RawMessage) (*warmupEvent, bool) {
	var eventMap map[string]interface{}
	if err := json.Unmarshal(event, &eventMap); err != nil {
		return nil, false
	}

	source, ok := eventMap["source"].(string)
	if !ok || source != warmupSource {
		return nil, false
	}

	warmup := &warmupEvent{
		Source:      source,
		Concurrency: config.GetConfig().WarmupConcurrency,
	}
	if concurrency, ok := eventMap["concurrency"].(float64); ok {
		warmup.Concurrency = int(concurrency)
	}

	return warmup, true
}

// handleWarmup warms this instance and fans out to additional ones when the
// event asks for concurrency.
func handleWarmup(ctx context.Context, warmup *warmupEvent) (interface{}, error) {
	instancesWarmed := 1

	if warmup.Concurrency > 0 {
		if err := selfInvoke(ctx, warmup.Concurrency); err != nil {
			logger.Base().Warn("warmup fanout failed", zap.Error(err))
		} else {
			instancesWarmed += warmup.Concurrency
		}
	}

	time.Sleep(warmupDelay)

	logger.Base().Info("warmup complete", zap.Int("instances_warmed", instancesWarmed))
	return warmupResponse{Status: "warm", InstancesWarmed: instancesWarmed}, nil
}

// selfInvoke asynchronously invokes this function count times. Child events
// carry concurrency zero so the fanout cannot recurse.
func selfInvoke(ctx context.Context, count int) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	client := lambdasdk.NewFromConfig(cfg)
	functionName := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")

	payload, err := json.Marshal(warmupEvent{Source: warmupSource, Concurrency: 0})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	var invokeErr error
	var errMu sync.Mutex

	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			if err != nil {
				errMu.Lock()
				if invokeErr == nil {
					invokeErr = err
				}
				errMu.Unlock()
			}
		}()
	}

	wg.Wait()
	return invokeErr
}
