package dtos

// AgentJob is the listing proposed by the job agent.
type AgentJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Link        string `json:"link"`
	Description string `json:"description"`
	MatchReason string `json:"match_reason"`
}

type AgentFindResponse struct {
	Job AgentJob `json:"job"`
}

type AgentApplyRequest struct {
	Job *AgentJob `json:"job"`
}
