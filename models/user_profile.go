package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID             string `dynamodbav:"userId" json:"userId"` // Partition Key
	FullName           string `dynamodbav:"fullName,omitempty" json:"fullName,omitempty"`
	EmailID            string `dynamodbav:"emailId,omitempty" json:"emailId,omitempty"` // Used in GSI
	Bio                string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	PhotoKey           string `dynamodbav:"photoKey,omitempty" json:"photoKey,omitempty"` // S3 object key for the profile picture
	FeedbackVisibility string `dynamodbav:"feedbackVisibility,omitempty" json:"feedbackVisibility,omitempty"`
	CreatedAt          string `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"

// EmailIndex is the GSI used to look up a profile by email
const EmailIndex = "emailId-index"

// Profile-level default for who may see received feedback. Stored and
// queryable only; no access check reads it.
const (
	FeedbackVisibilityPrivate  = "private"
	FeedbackVisibilityManagers = "managers"
	FeedbackVisibilityAll      = "all"
)
