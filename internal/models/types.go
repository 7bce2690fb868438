package models

// ChatRequest is an incoming chat message
type ChatRequest struct {
	Text string `json:"text"`
}

// TurnResponse is one recorded chat exchange
type TurnResponse struct {
	UserText  string `json:"userText"`
	ReplyText string `json:"replyText"`
	Mood      string `json:"mood"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HistoryResponse is the ordered chat ledger
type HistoryResponse struct {
	Turns []TurnResponse `json:"turns"`
}

// ReflectionRequest is an incoming journal entry
type ReflectionRequest struct {
	Text string `json:"text"`
}

// ReflectionResponse is one recorded journal entry; Support carries the
// companion's reply, which is returned but never stored.
type ReflectionResponse struct {
	Text      string `json:"text"`
	Mood      string `json:"mood,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Support   string `json:"support,omitempty"`
}

// ReflectionsResponse is the ordered reflection ledger
type ReflectionsResponse struct {
	Reflections []ReflectionResponse `json:"reflections"`
}

// PromptResponse carries a journaling prompt
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// InsightsResponse carries the derived insight statements in order
type InsightsResponse struct {
	Insights []string `json:"insights"`
}

// MoodCountsResponse tallies the chat history per mood label
type MoodCountsResponse struct {
	Counts map[string]int `json:"counts"`
}

// NicknameRequest updates the companion's nickname
type NicknameRequest struct {
	Nickname string `json:"nickname"`
}

// NicknameResponse is the companion's current nickname
type NicknameResponse struct {
	Nickname string `json:"nickname"`
}

// StatusResponse acknowledges clear/delete operations
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse reports component status
type HealthResponse struct {
	Status  string `json:"status"`
	Oracle  string `json:"oracle"`
	Store   string `json:"store"`
	Version string `json:"version"`
}
