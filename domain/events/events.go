package events

import "time"

// Event source identifier used for every published event
const SourceBackend = "advicehub.backend"

// Event type names
const (
	TypeAdviceCreated  = "advice.created"
	TypeAdviceUpdated  = "advice.updated"
	TypeAdviceDeleted  = "advice.deleted"
	TypeAdviceLiked    = "advice.liked"
	TypeAdviceUnliked  = "advice.unliked"
	TypeUserRegistered = "user.registered"
)

// DomainEvent is the contract every published event satisfies
type DomainEvent interface {
	GetEventType() string
	GetAggregateID() string
	GetTimestamp() time.Time
}

// BaseEvent carries the fields shared by every event
type BaseEvent struct {
	EventType   string    `json:"eventType"`
	AggregateID string    `json:"aggregateId"`
	Timestamp   time.Time `json:"timestamp"`
}

// GetEventType returns the event type name
func (e BaseEvent) GetEventType() string { return e.EventType }

// GetAggregateID returns the identifier of the record the event concerns
func (e BaseEvent) GetAggregateID() string { return e.AggregateID }

// GetTimestamp returns when the event occurred
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		AggregateID: aggregateID,
		Timestamp:   time.Now().UTC(),
	}
}

// AdviceCreated is published after an advice record is stored
type AdviceCreated struct {
	BaseEvent
	AuthorID   string   `json:"authorId"`
	Categories []string `json:"categories"`
}

// NewAdviceCreated builds an AdviceCreated event
func NewAdviceCreated(adviceID, authorID string, categories []string) AdviceCreated {
	return AdviceCreated{
		BaseEvent:  newBase(TypeAdviceCreated, adviceID),
		AuthorID:   authorID,
		Categories: categories,
	}
}

// AdviceUpdated is published after an author edits an advice record
type AdviceUpdated struct {
	BaseEvent
	AuthorID string `json:"authorId"`
}

// NewAdviceUpdated builds an AdviceUpdated event
func NewAdviceUpdated(adviceID, authorID string) AdviceUpdated {
	return AdviceUpdated{
		BaseEvent: newBase(TypeAdviceUpdated, adviceID),
		AuthorID:  authorID,
	}
}

// AdviceDeleted is published after an advice record is permanently removed
type AdviceDeleted struct {
	BaseEvent
	AuthorID string `json:"authorId"`
}

// NewAdviceDeleted builds an AdviceDeleted event
func NewAdviceDeleted(adviceID, authorID string) AdviceDeleted {
	return AdviceDeleted{
		BaseEvent: newBase(TypeAdviceDeleted, adviceID),
		AuthorID:  authorID,
	}
}

// LikeToggled is published after a like or unlike transition is applied
type LikeToggled struct {
	BaseEvent
	UserID string `json:"userId"`
	Likes  int    `json:"likes"`
}

// NewLikeToggled builds a LikeToggled event; liked selects between the
// liked and unliked event types
func NewLikeToggled(adviceID, userID string, likes int, liked bool) LikeToggled {
	eventType := TypeAdviceUnliked
	if liked {
		eventType = TypeAdviceLiked
	}
	return LikeToggled{
		BaseEvent: newBase(eventType, adviceID),
		UserID:    userID,
		Likes:     likes,
	}
}

// UserRegistered is published after a new account is created
type UserRegistered struct {
	BaseEvent
	Email string `json:"email"`
}

// NewUserRegistered builds a UserRegistered event
func NewUserRegistered(userID, email string) UserRegistered {
	return UserRegistered{
		BaseEvent: newBase(TypeUserRegistered, userID),
		Email:     email,
	}
}
