package language

import (
	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

// Resolution is the outcome of resolving the languages of one request.
// Codes are client codes from the table; tags are the matching locale tags.
type Resolution struct {
	SourceCode string
	SourceTag  string
	TargetCode string
	TargetTag  string

	// SourceDetected is true when the source came from detection instead
	// of an explicit supported code.
	SourceDetected bool
	// SourceDefaulted is true when detection failed or produced an
	// unsupported language, so DefaultCode was used.
	SourceDefaulted bool
	// TargetSubstituted is true when the requested target was unsupported
	// and DefaultCode was used instead.
	TargetSubstituted bool
}

// Resolver decides the effective source and target languages for a
// translation request.
type Resolver struct {
	detector Detector
}

// NewResolver creates a resolver that uses the given detector for source
// languages that cannot be resolved from an explicit code.
func NewResolver(detector Detector) *Resolver {
	return &Resolver{detector: detector}
}

// Resolve maps explicit codes and the request text to supported client
// codes and locale tags.
//
// An explicit source code that is in the table is used as-is and the text
// is never inspected. Unknown explicit codes and absent codes fall back to
// detection, and failed or unsupported detection falls back to
// DefaultCode. The target never uses detection: any code outside the
// table is substituted with DefaultCode and the substitution is logged.
func (r *Resolver) Resolve(text, sourceCode, targetCode string) Resolution {
	var res Resolution

	source := Normalize(sourceCode)
	switch {
	case source != "" && IsSupported(source):
		res.SourceCode = source
	default:
		if source != "" {
			logger.Base().Warn("explicit source language not supported, falling back to detection",
				zap.String("source_language", sourceCode))
		}
		res.SourceCode, res.SourceDefaulted = r.detectOrDefault(text)
		res.SourceDetected = true
	}
	res.SourceTag, _ = Lookup(res.SourceCode)

	target := Normalize(targetCode)
	if IsSupported(target) {
		res.TargetCode = target
	} else {
		logger.Base().Warn("target language not supported, substituting default",
			zap.String("target_language", targetCode),
			zap.String("substitute", DefaultCode))
		res.TargetCode = DefaultCode
		res.TargetSubstituted = true
	}
	res.TargetTag, _ = Lookup(res.TargetCode)

	return res
}

// detectOrDefault returns the detected source code, or DefaultCode (with
// defaulted=true) when detection fails or yields an unsupported language.
func (r *Resolver) detectOrDefault(text string) (string, bool) {
	detected, ok := r.detector.Detect(text)
	if !ok {
		logger.Base().Warn("language detection failed, defaulting",
			zap.String("default", DefaultCode))
		return DefaultCode, true
	}

	code := Normalize(detected)
	if !IsSupported(code) {
		logger.Base().Warn("detected language not supported, defaulting",
			zap.String("detected", detected),
			zap.String("default", DefaultCode))
		return DefaultCode, true
	}
	return code, false
}
