package models

// Interaction is a confirmed record that two users engaged in real life.
// Interactions are always created as a symmetric pair inside one transaction:
// one item under each participant's partition, referencing the other
// participant and sharing a single timestamp. They are never updated or
// deleted afterwards.
type Interaction struct {
	UserID         string `dynamodbav:"userId" json:"userId"`                 // Partition Key (owning participant)
	InteractionID  string `dynamodbav:"interactionId" json:"interactionId"`   // Sort Key
	Participant1ID string `dynamodbav:"participant1Id" json:"participant1Id"` // Always equals UserID
	Participant2ID string `dynamodbav:"participant2Id" json:"participant2Id"` // The other participant
	Timestamp      string `dynamodbav:"timestamp" json:"timestamp"`           // Shared across the pair
}

// InteractionPair is the result of a successful commit: the two halves of a
// confirmed interaction, one per participant.
type InteractionPair struct {
	Initiator Interaction `json:"initiator"`
	Peer      Interaction `json:"peer"`
}

// InteractionsTable is the DynamoDB table name for confirmed interactions
const InteractionsTable = "Interactions"

// TableName returns the DynamoDB table name for the Interaction model
func (Interaction) TableName() string {
	return InteractionsTable
}
