package types

// Proposal categories (labels shown as-is in the frontend).
const (
	CategoryEnvironment    = "Environnement"
	CategoryCulture        = "Culture & Patrimoine"
	CategoryInfrastructure = "Infrastructure"
	CategoryEducation      = "Éducation"
	CategorySports         = "Sports & Loisirs"
	CategoryOther          = "Autre"
)

// Categories lists every valid proposal category.
var Categories = []string{
	CategoryEnvironment,
	CategoryCulture,
	CategoryInfrastructure,
	CategoryEducation,
	CategorySports,
	CategoryOther,
}

// ValidCategory reports whether cat is one of the fixed proposal categories.
func ValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// AIAnalysis is attached to a proposal at creation time and never updated.
type AIAnalysis struct {
	Impact        string   `json:"impact"`
	Feasibility   string   `json:"feasibility"`
	EstimatedCost string   `json:"estimatedCost"`
	Tags          []string `json:"tags"`
}

// Proposal is a citizen-submitted idea. Votes only ever increase.
type Proposal struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Author      string      `json:"author"`
	Date        string      `json:"date"`
	Votes       int         `json:"votes"`
	Category    string      `json:"category"`
	AIAnalysis  *AIAnalysis `json:"aiAnalysis,omitempty"`
}

// ForumReply is one post in a topic. The first reply of a topic is the
// topic's own opening message, stored like any other reply.
type ForumReply struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Content     string `json:"content"`
	Date        string `json:"date"`
	IsModerated bool   `json:"isModerated,omitempty"`
}

// ForumTopic owns its reply sequence. Category here is a free-form label,
// not the proposal category enumeration.
type ForumTopic struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Author   string       `json:"author"`
	Date     string       `json:"date"`
	Category string       `json:"category"`
	Replies  []ForumReply `json:"replies"`
	Views    int          `json:"views"`
}

// Chat message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one transcript entry. Text grows in place while a model
// response streams in; IsTyping is set for the duration.
type ChatMessage struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Text     string `json:"text"`
	IsTyping bool   `json:"isTyping,omitempty"`
}

// Event is a municipal agenda/news item. Read-only seed data.
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}
