package models

import (
	"strconv"
	"strings"
)

type GenerateAssessmentRequest struct {
	Profile   CandidateProfile `json:"profile"`
	RequestID string           `json:"request_id"`
}

// implements the Validator interface
func (r *GenerateAssessmentRequest) Validate() error {
	if strings.TrimSpace(r.Profile.ResumeText) == "" && len(r.Profile.Skills) == 0 {
		return &ErrorResponse{
			Code:    "missing_profile",
			Message: "Profile must carry resume text or a skills list",
		}
	}

	// Normalize free-form attributes; unknown values are tolerated and
	// corrected downstream by parameter clamping.
	r.Profile.Role = strings.TrimSpace(r.Profile.Role)
	r.Profile.ExperienceLevel = strings.ToLower(strings.TrimSpace(r.Profile.ExperienceLevel))

	skills := make([]string, 0, len(r.Profile.Skills))
	for _, s := range r.Profile.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	r.Profile.Skills = skills

	return nil
}

type EvaluateAssessmentRequest struct {
	Answers     []SubmissionAnswer `json:"answers"`
	Submissions []CodeSubmission   `json:"submissions"`
	RequestID   string             `json:"request_id"`
}

func (r *EvaluateAssessmentRequest) Validate() error {
	if len(r.Answers) == 0 && len(r.Submissions) == 0 {
		return &ErrorResponse{
			Code:    "empty_submission",
			Message: "At least one answer or code submission is required",
		}
	}

	for i, ans := range r.Answers {
		if strings.TrimSpace(ans.QuestionID) == "" {
			return &ErrorResponse{
				Code:    "missing_question_id",
				Message: "Every answer must reference a question",
				Details: []ValidationErrorDetail{{Field: "answers", Reason: "entry " + strconv.Itoa(i) + " has no question_id"}},
			}
		}
	}

	for i, sub := range r.Submissions {
		if strings.TrimSpace(sub.TaskID) == "" {
			return &ErrorResponse{
				Code:    "missing_task_id",
				Message: "Every code submission must reference a task",
				Details: []ValidationErrorDetail{{Field: "submissions", Reason: "entry " + strconv.Itoa(i) + " has no task_id"}},
			}
		}
	}

	return nil
}
