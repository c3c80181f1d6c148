package models

// InteractionCode is a short-lived token a user shares (as text or QR) so a
// peer can confirm a real-world interaction. Keyed by owner: each user has at
// most one live code, and reissuing overwrites the previous one.
type InteractionCode struct {
	OwnerID   string `dynamodbav:"ownerId" json:"ownerId"` // Partition Key
	Code      string `dynamodbav:"code" json:"code"`       // Used in GSI (uppercase, fixed length)
	ExpiresAt int64  `dynamodbav:"expiresAt" json:"expiresAt"` // Epoch seconds; also the table's TTL attribute
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// InteractionCodesTable is the DynamoDB table name for interaction codes
const InteractionCodesTable = "InteractionCodes"

// CodeIndex is the GSI used to resolve a redeemed code back to its owner
const CodeIndex = "code-index"

// TableName returns the DynamoDB table name for the InteractionCode model
func (InteractionCode) TableName() string {
	return InteractionCodesTable
}
