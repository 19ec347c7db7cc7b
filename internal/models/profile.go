package models

// CandidateProfile is the immutable input to assessment generation. The
// resume excerpt arrives already extracted from the uploaded document;
// extraction itself happens upstream.
type CandidateProfile struct {
	ResumeText      string   `json:"resume_text"`
	Role            string   `json:"role"`
	ExperienceLevel string   `json:"experience_level"`
	Skills          []string `json:"skills"`
}

// ResumeExcerpt bounds how much resume text is forwarded into prompts.
// Cuts on a rune boundary so multi-byte text is never split.
func (p CandidateProfile) ResumeExcerpt(limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(p.ResumeText)
	if len(runes) <= limit {
		return p.ResumeText
	}
	return string(runes[:limit])
}
