package models

import "time"

type GuestLink struct {
	ID      string    `json:"id"`
	Token   string    `json:"token"`
	ClassID string    `json:"classId"`
	Expiry  time.Time `json:"expiry"`
}

func (g GuestLink) ToDocument() Document {
	return NewDocument(g.ID, map[string]any{
		"token":   g.Token,
		"classId": g.ClassID,
		"expiry":  g.Expiry,
	})
}

// IsExpired reports whether now is past the link expiry.
func (g GuestLink) IsExpired(now time.Time) bool {
	return now.After(g.Expiry)
}

func GuestLinkFromDocument(d Document) GuestLink {
	expiry, _ := Time(d.Get("expiry"))
	return GuestLink{
		ID:      d.ID,
		Token:   String(d.Get("token")),
		ClassID: String(d.Get("classId")),
		Expiry:  expiry,
	}
}

// GuestView is what a guest token resolves to.
type GuestView struct {
	ClassID string             `json:"classId"`
	Data    []GuestStudentView `json:"data"`
}
