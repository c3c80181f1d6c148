package models

// PendingInteraction is the request/approve variant of the confirmation
// handshake: one user nominates a peer, and the peer must approve before the
// interaction pair is created. Approval deletes the record in the same
// transaction that writes the pair; declined records are kept for history.
type PendingInteraction struct {
	RequestID   string `dynamodbav:"requestId" json:"requestId"` // Partition Key
	RequesterID string `dynamodbav:"requesterId" json:"requesterId"` // Used in GSI
	RequesteeID string `dynamodbav:"requesteeId" json:"requesteeId"` // Used in GSI; only this user may approve or decline
	Status      string `dynamodbav:"status" json:"status"`           // "pending", "declined"
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// Pending interaction statuses. There is no stored "confirmed" status:
// confirmation is represented by the resulting interaction pair, not by a
// lingering record.
const (
	PendingInteractionStatusPending  = "pending"
	PendingInteractionStatusDeclined = "declined"
)

// PendingInteractionsTable is the DynamoDB table name for pending interactions
const PendingInteractionsTable = "PendingInteractions"

// GSI names for listing requests from either side
const (
	PendingRequesterIndex = "requesterId-index"
	PendingRequesteeIndex = "requesteeId-index"
)

// TableName returns the DynamoDB table name for the PendingInteraction model
func (PendingInteraction) TableName() string {
	return PendingInteractionsTable
}
