// Package translate orchestrates the translation pipeline: language
// resolution, result caching and model generation.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/internal/cache"
	"github.com/ClareAI/astra-translate-service/internal/core/language"
	"github.com/ClareAI/astra-translate-service/internal/core/model"
	"github.com/ClareAI/astra-translate-service/internal/domain"
	"github.com/ClareAI/astra-translate-service/internal/metrics"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

// Service runs translation requests through language resolution, the
// result cache and the generation backend. All dependencies are injected;
// the service holds no per-request state and is safe for concurrent use.
type Service struct {
	translator model.Translator
	resolver   *language.Resolver
	results    cache.ResultCache
	params     model.GenerationParams
}

// NewService wires the translation pipeline.
func NewService(translator model.Translator, resolver *language.Resolver, results cache.ResultCache) *Service {
	return &Service{
		translator: translator,
		resolver:   resolver,
		results:    results,
		params:     model.DefaultGenerationParams(),
	}
}

// Translate handles one request. Blank text succeeds immediately with an
// empty translation and never reaches the model. All failures, including
// recovered panics, come back as a *domain.Failure carrying the language
// codes resolved before the error.
func (s *Service) Translate(ctx context.Context, req domain.Request) (result domain.Result, err error) {
	done := metrics.TrackActive()
	defer done()

	var resolved language.Resolution
	defer func() {
		if r := recover(); r != nil {
			logger.Base().Error("Panic during translation", zap.Any("panic", r))
			result = domain.Result{}
			err = domain.NewUnexpectedFailure(fmt.Sprintf("panic: %v", r), resolved.SourceCode, resolved.TargetCode)
		}
	}()

	if strings.TrimSpace(req.Text) == "" {
		return s.emptyResult(req), nil
	}

	resolved = s.resolver.Resolve(req.Text, req.SourceCode, req.TargetCode)
	recordResolution(resolved)

	if cached, ok := s.results.Get(ctx, req.Text, resolved.SourceTag, resolved.TargetTag); ok {
		metrics.RecordCacheHit()
		logger.Base().Debug("Translation served from cache",
			zap.String("source", resolved.SourceCode),
			zap.String("target", resolved.TargetCode))
		return cached, nil
	}
	metrics.RecordCacheMiss()

	translated, err := s.generate(ctx, req.Text, resolved)
	if err != nil {
		return domain.Result{}, err
	}

	result = domain.Result{
		TranslatedText: translated,
		SourceCode:     resolved.SourceCode,
		TargetCode:     resolved.TargetCode,
	}
	s.results.Put(ctx, req.Text, resolved.SourceTag, resolved.TargetTag, result)
	return result, nil
}

// HealthCheck verifies the generation backend is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.translator.CheckHealth(ctx)
}

// emptyResult answers a blank-text request: nothing to translate, no
// generation. Codes fall back to the default when unusable.
func (s *Service) emptyResult(req domain.Request) domain.Result {
	source := language.Normalize(req.SourceCode)
	if !language.IsSupported(source) {
		source = language.DefaultCode
	}
	target := language.Normalize(req.TargetCode)
	if !language.IsSupported(target) {
		target = language.DefaultCode
	}
	return domain.Result{TranslatedText: "", SourceCode: source, TargetCode: target}
}

func (s *Service) generate(ctx context.Context, text string, resolved language.Resolution) (string, error) {
	start := time.Now()

	translated, err := s.translator.Generate(ctx, model.GenerationRequest{
		Text:      text,
		SourceTag: resolved.SourceTag,
		TargetTag: resolved.TargetTag,
		Params:    s.params,
	})
	if err != nil {
		logger.Base().Error("Generation failed",
			zap.String("source", resolved.SourceCode),
			zap.String("target", resolved.TargetCode),
			zap.Error(err))
		return "", domain.NewTranslationFailure(err.Error(), resolved.SourceCode, resolved.TargetCode)
	}

	logger.Base().Info("Translation completed",
		zap.String("source", resolved.SourceCode),
		zap.String("target", resolved.TargetCode),
		zap.Int("text_length", len(text)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return translated, nil
}

func recordResolution(resolved language.Resolution) {
	if resolved.SourceDefaulted {
		metrics.RecordSourceDefaulted()
	} else if resolved.SourceDetected {
		metrics.RecordSourceDetected()
	}
	if resolved.TargetSubstituted {
		metrics.RecordTargetSubstituted()
	}
}
