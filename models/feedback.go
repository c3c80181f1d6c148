package models

// FeedbackCriteria holds the three fixed star ratings (1-5) a reviewer gives.
type FeedbackCriteria struct {
	Collaboration int `dynamodbav:"collaboration" json:"collaboration"`
	Communication int `dynamodbav:"communication" json:"communication"`
	Execution     int `dynamodbav:"execution" json:"execution"`
}

// Feedback is a single review of one user by another. It is stored under the
// reviewee's partition (the subject owns the document, not the author) —
// dashboards and summaries only ever query the subject's own partition.
// Feedback is written once and never edited or deleted.
type Feedback struct {
	RevieweeID          string           `dynamodbav:"revieweeId" json:"revieweeId"` // Partition Key
	FeedbackID          string           `dynamodbav:"feedbackId" json:"feedbackId"` // Sort Key
	ReviewerID          string           `dynamodbav:"reviewerId" json:"reviewerId"`
	Rating              float64          `dynamodbav:"rating" json:"rating"` // Average of the three criteria
	Criteria            FeedbackCriteria `dynamodbav:"criteria" json:"criteria"`
	Strengths           string           `dynamodbav:"strengths" json:"strengths"`
	AreasForImprovement string           `dynamodbav:"areasForImprovement" json:"areasForImprovement"`
	Visibility          string           `dynamodbav:"visibility" json:"visibility"`
	ReportReason        string           `dynamodbav:"reportReason,omitempty" json:"reportReason,omitempty"`
	RequestID           string           `dynamodbav:"requestId,omitempty" json:"requestId,omitempty"` // FeedbackRequest resolved by this submission, if any
	CreatedAt           string           `dynamodbav:"createdAt" json:"createdAt"`
}

// Per-document visibility values. Stored and queryable only; nothing in the
// server enforces them.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityShared  = "shared"
)

// FeedbackTable is the DynamoDB table name for feedback documents
const FeedbackTable = "Feedback"

// TableName returns the DynamoDB table name for the Feedback model
func (Feedback) TableName() string {
	return FeedbackTable
}
