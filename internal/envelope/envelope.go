// Package envelope implements the serverless request envelope: a JSON
// document wrapping one translation request under an "input" key. The
// processor always produces a response document and never returns an
// error, so queue and lambda surfaces cannot crash on bad payloads.
package envelope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/internal/domain"
	"github.com/ClareAI/astra-translate-service/internal/metrics"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

// Envelope is the wire format of an asynchronous translation request.
type Envelope struct {
	Input Input `json:"input"`
}

// Input carries the request fields. Pointers distinguish an absent field
// from an empty one: empty text is a valid request, absent text is not.
type Input struct {
	Text           *string `json:"text"`
	TargetLanguage *string `json:"target_language"`
	SourceLanguage *string `json:"source_language"`
}

// Response is a successful envelope result.
type Response struct {
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// ErrorResponse reports a failed envelope. The language fields are set on
// translation failures and omitted on validation failures.
type ErrorResponse struct {
	Error          string `json:"error"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
}

// Processor executes envelopes against the translation service.
type Processor struct {
	service *translate.Service
	surface string
}

// NewProcessor creates an envelope processor. The surface names the
// transport for metrics, e.g. metrics.SurfacePubSub.
func NewProcessor(service *translate.Service, surface string) *Processor {
	return &Processor{service: service, surface: surface}
}

// Process handles one raw envelope document. It always returns a
// marshalable response: malformed JSON, missing fields, translation
// failures and panics all map to an ErrorResponse.
func (p *Processor) Process(ctx context.Context, raw []byte) (out interface{}) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Base().Error("Panic processing envelope", zap.Any("panic", r))
			out = ErrorResponse{Error: fmt.Sprintf("Error processing request: %v", r)}
		}
		_, failed := out.(ErrorResponse)
		responseBytes := 0
		if resp, ok := out.(Response); ok {
			responseBytes = len(resp.TranslatedText)
		}
		metrics.RecordRequest(p.surface, !failed, time.Since(start), len(raw), responseBytes)
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Base().Warn("Malformed envelope", zap.Error(err))
		return ErrorResponse{Error: fmt.Sprintf("Error processing request: %v", err)}
	}

	return p.processInput(ctx, env.Input)
}

func (p *Processor) processInput(ctx context.Context, input Input) interface{} {
	if input.Text == nil {
		return ErrorResponse{Error: domain.MissingFieldText}
	}
	if input.TargetLanguage == nil {
		return ErrorResponse{Error: domain.MissingFieldTarget}
	}

	source := ""
	if input.SourceLanguage != nil {
		source = *input.SourceLanguage
	}

	result, err := p.service.Translate(ctx, domain.Request{
		Text:       *input.Text,
		TargetCode: *input.TargetLanguage,
		SourceCode: source,
	})
	if err != nil {
		return errorResponse(err)
	}

	return Response{
		TranslatedText: result.TranslatedText,
		SourceLanguage: result.SourceCode,
		TargetLanguage: result.TargetCode,
	}
}

// errorResponse maps a pipeline failure to the envelope error document,
// reporting the language codes known when the failure happened.
func errorResponse(err error) ErrorResponse {
	var failure *domain.Failure
	if !errors.As(err, &failure) {
		return ErrorResponse{
			Error:          fmt.Sprintf("Translation error: %v", err),
			SourceLanguage: "unknown",
			TargetLanguage: "unknown",
		}
	}

	resp := ErrorResponse{
		Error:          fmt.Sprintf("Translation error: %s", failure.Message),
		SourceLanguage: failure.SourceCode,
		TargetLanguage: failure.TargetCode,
	}
	if resp.SourceLanguage == "" {
		resp.SourceLanguage = "unknown"
	}
	if resp.TargetLanguage == "" {
		resp.TargetLanguage = "unknown"
	}
	return resp
}
