package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/parser"
	"talentgate/assess/internal/prompts"
	"talentgate/assess/internal/utils"
)

// inferenceTemperature keeps parameter inference near-deterministic; the
// payload is small and structure matters more than variety.
const inferenceTemperature = 0.2

// maxFocusSkills bounds how many skills a single assessment probes.
const maxFocusSkills = 5

// ParameterEngine derives generation parameters from a candidate profile.
// One analysis call; any failure to obtain or parse the payload yields the
// fixed defaults. Returned parameters are always clamped into valid ranges.
type ParameterEngine struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	config   *config.Config
	logger   *zap.Logger
}

func NewParameterEngine(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config, logger *zap.Logger) *ParameterEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParameterEngine{provider: provider, prompts: promptManager, config: cfg, logger: logger}
}

func (e *ParameterEngine) InferParameters(ctx context.Context, profile models.CandidateProfile) models.GenerationParameters {
	prompt, err := e.prompts.BuildPrompt("profile", "default", map[string]interface{}{
		"Role":            valueOrUnknown(profile.Role),
		"ExperienceLevel": valueOrUnknown(profile.ExperienceLevel),
		"Skills":          valueOrUnknown(strings.Join(profile.Skills, ", ")),
		"Resume":          profile.ResumeExcerpt(e.config.ProfileExcerptLimit),
	})
	if err != nil {
		e.logger.Error("building inference prompt failed", zap.Error(err))
		return e.fallbackParameters(profile)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.config.CallTimeout)
	defer cancel()

	result, err := e.provider.GenerateText(callCtx, prompt, models.GenerationOptions{
		Temperature: inferenceTemperature,
	})
	if err != nil {
		e.logger.Warn("parameter inference call failed, using defaults", zap.Error(err))
		return e.fallbackParameters(profile)
	}

	var inferred models.GenerationParameters
	if err := json.Unmarshal([]byte(parser.ExtractJSON(result.Text)), &inferred); err != nil {
		e.logger.Warn("parameter payload unparseable, using defaults", zap.Error(err))
		return e.fallbackParameters(profile)
	}

	inferred.Difficulty = utils.NormalizeDifficulty(inferred.Difficulty)
	inferred.Language = utils.NormalizeLanguage(inferred.Language)
	if len(inferred.FocusSkills) == 0 {
		inferred.FocusSkills = truncateSkills(profile.Skills)
	} else {
		inferred.FocusSkills = truncateSkills(inferred.FocusSkills)
	}
	return inferred.Clamped()
}

// fallbackParameters returns the fixed defaults, carrying over the profile's
// declared skills so focus is not lost along with the inference call.
func (e *ParameterEngine) fallbackParameters(profile models.CandidateProfile) models.GenerationParameters {
	params := models.DefaultParameters()
	params.FocusSkills = truncateSkills(profile.Skills)
	return params
}

func truncateSkills(skills []string) []string {
	kept := make([]string, 0, maxFocusSkills)
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		kept = append(kept, s)
		if len(kept) == maxFocusSkills {
			break
		}
	}
	return kept
}

func valueOrUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "unknown"
	}
	return v
}
