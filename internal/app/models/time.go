package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

func (t *TimeModel) SetCreatedAtUpdatedAt() {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
}

func (t *TimeModel) SetUpdatedAt() {
	t.UpdatedAt = time.Now()
}
