package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Aksi moderasi yang dicatat ke MongoDB (collection: report_activities).
const (
	ActivityCreated       = "created"
	ActivityStatusChanged = "status_changed"
	ActivityDeleted       = "deleted"
	ActivityValidated     = "validated"
)

// ReportActivity merepresentasikan 1 dokumen jejak aktivitas laporan di MongoDB.
// Dokumen ini hanya untuk audit; sumber kebenaran tetap tabel reports di Postgres.
type ReportActivity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID  uint               `bson:"reportId" json:"report_id"`
	Action    string             `bson:"action" json:"action"`
	Detail    string             `bson:"detail,omitempty" json:"detail,omitempty"` // misal status baru atau tag vote
	Actor     string             `bson:"actor,omitempty" json:"actor,omitempty"`   // anonymous_id, user_identifier, atau admin
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
