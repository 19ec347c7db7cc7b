package handlers

import (
	"net/http"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/prompts"
	"talentgate/assess/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	config        *config.Config
}

func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "assess",
		"version": "1.0.0",
	})
}

// ReadyzHandler reports whether the service can serve generation requests.
// Every dependency is checked so a failing readiness probe names the broken
// piece instead of a bare 503.
func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	probes := []struct {
		name  string
		check func() string
	}{
		{"provider", func() string {
			if handler.provider == nil {
				return "Generative provider not initialized"
			}
			return ""
		}},
		{"prompt_manager", func() string {
			if handler.promptManager == nil {
				return "Prompt manager not initialized"
			}
			if len(handler.promptManager.GetTemplates()) == 0 {
				return "No prompt templates loaded"
			}
			return ""
		}},
		{"configuration", func() string {
			if handler.config == nil {
				return "Configuration not loaded"
			}
			return ""
		}},
	}

	checks := make(map[string]ReadinessCheck, len(probes))
	ready := true
	for _, probe := range probes {
		if msg := probe.check(); msg != "" {
			checks[probe.name] = ReadinessCheck{Status: "failed", Message: msg}
			ready = false
		} else {
			checks[probe.name] = ReadinessCheck{Status: "ok"}
		}
	}

	response := ReadinessResponse{Service: "assess", Checks: checks}
	if ready {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	utils.JSON(writer, http.StatusServiceUnavailable, response)
}
