package models

// FeedbackRequest is an invitation to review: the requester asks the
// requestee to submit feedback about the requester. Completion happens only
// through feedback submission, in the same transaction as the feedback write.
type FeedbackRequest struct {
	RequestID   string `dynamodbav:"requestId" json:"requestId"` // Partition Key
	RequesterID string `dynamodbav:"requesterId" json:"requesterId"` // Used in GSI; the subject of the eventual feedback
	RequesteeID string `dynamodbav:"requesteeId" json:"requesteeId"` // Used in GSI; the reviewer being asked
	Status      string `dynamodbav:"status" json:"status"`           // "pending", "completed", "declined"
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// Feedback request statuses. "completed" and "declined" are terminal.
const (
	FeedbackRequestStatusPending   = "pending"
	FeedbackRequestStatusCompleted = "completed"
	FeedbackRequestStatusDeclined  = "declined"
)

// FeedbackRequestsTable is the DynamoDB table name for feedback requests
const FeedbackRequestsTable = "FeedbackRequests"

// GSI names for listing requests from either side
const (
	FeedbackRequesterIndex = "requesterId-index"
	FeedbackRequesteeIndex = "requesteeId-index"
)

// TableName returns the DynamoDB table name for the FeedbackRequest model
func (FeedbackRequest) TableName() string {
	return FeedbackRequestsTable
}
