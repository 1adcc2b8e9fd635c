package domain

import "time"

type DocumentStatus string

const (
	DocumentAwaiting DocumentStatus = "awaiting"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

func ParseDocumentStatus(s string) (DocumentStatus, bool) {
	switch DocumentStatus(s) {
	case DocumentAwaiting, DocumentApproved, DocumentRejected:
		return DocumentStatus(s), true
	default:
		return "", false
	}
}

type DocumentType string

const (
	DocPassport         DocumentType = "passport"
	DocEnrollmentLetter DocumentType = "enrollment_letter"
)

type Document struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"user_id"`
	ReservationID *int64         `json:"reservation_id,omitempty"`
	Type          DocumentType   `json:"type"`
	FileName      string         `json:"file_name"`
	StoragePath   string         `json:"storage_path"`
	Status        DocumentStatus `json:"status"`
	ReviewNote    string         `json:"review_note,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewDocument builds an unreviewed document record; every upload starts in
// the awaiting state.
func NewDocument(userID int64, reservationID *int64, docType DocumentType, fileName, storagePath string) *Document {
	return &Document{
		UserID:        userID,
		ReservationID: reservationID,
		Type:          docType,
		FileName:      fileName,
		StoragePath:   storagePath,
		Status:        DocumentAwaiting,
	}
}

type DocumentReviewReq struct {
	Status     DocumentStatus `json:"status"`
	ReviewNote string         `json:"review_note"`
}

type DocumentFilter struct {
	Status *DocumentStatus
	UserID *int64
	Type   *DocumentType
}
