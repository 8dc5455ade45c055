package models

// ChatChannel identifies where an assistant conversation happens.
type ChatChannel string

const (
	ChannelWeb      ChatChannel = "web"
	ChannelWhatsApp ChatChannel = "whatsapp"
)

// ChatRole distinguishes patient messages from assistant replies.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of an assistant conversation. Conversation
// state lives in these rows, not in process memory, so any instance can
// serve the next turn.
type ChatMessage struct {
	BaseModel
	OrganizationID string      `gorm:"size:36;index" json:"organizationId"`
	UserID         string      `gorm:"size:36;index" json:"userId"`
	Channel        ChatChannel `gorm:"size:20;default:'web'" json:"channel"`
	Role           ChatRole    `gorm:"size:20" json:"role"`
	Content        string      `gorm:"type:text" json:"content"`
	// IntentJSON stores the extracted intent for user turns, for audit
	// and follow-up composition.
	IntentJSON string `gorm:"type:text" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
