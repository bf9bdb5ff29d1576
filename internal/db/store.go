package db

import "context"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Submission struct {
	StudentName       string `json:"student_name"`
	StudentNumber     string `json:"student_number"`
	TelegramHandle    string `json:"telegram_username"`
	DeviceID          string `json:"device_id"`
	Subjects          string `json:"subjects"`
	CodesCount        int    `json:"codes_count"`
	HasEnglishCodes   bool   `json:"has_english_codes"`
	EnglishCodesCount int    `json:"english_codes_count"`
	Notes             string `json:"notes"`

	SubmitterID     int64   `json:"submitter_id"`
	SubmitterName   string  `json:"submitter_name"`
	SubmitterHandle *string `json:"submitter_username"`

	Timestamp string `json:"timestamp"`
	Status    Status `json:"status"`
}

type Statistics struct {
	AcceptedCount     int `json:"accepted_students"`
	TotalCodes        int `json:"total_codes"`
	TotalEnglishCodes int `json:"total_english_codes"`
}

// Total is the sum of regular and english codes.
func (s Statistics) Total() int {
	return s.TotalCodes + s.TotalEnglishCodes
}

// Snapshot is the whole durable state, loaded and saved as one unit.
type Snapshot struct {
	Statistics Statistics             `json:"statistics"`
	Requests   map[string]*Submission `json:"requests"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{Requests: make(map[string]*Submission)}
}

// Store persists a Snapshot. Load never returns an unusable snapshot: a
// missing or corrupt document is replaced by a fresh one.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
