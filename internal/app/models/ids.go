package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yigit/facultyhub/internal/store"
)

// ObjectID is a 24 hex character document id. On disk it is written as
// {"$oid": "<hex>"}; a bare string is accepted when reading.
type ObjectID string

func (id ObjectID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ObjectID) IsZero() bool { return id == "" }

type oid struct {
	OID string `json:"$oid"`
}

func (id ObjectID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(oid{OID: string(id)})
}

func (id *ObjectID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ObjectID(s)
		return nil
	}
	var v oid
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("object id: %w", err)
	}
	*id = ObjectID(v.OID)
	return nil
}

// Kind marks the collection a Ref points into.
type Kind interface {
	Collection() store.Kind
}

type (
	UserKind             struct{}
	StudentKind          struct{}
	ProfessorKind        struct{}
	CourseKind           struct{}
	ExamRegistrationKind struct{}
)

func (UserKind) Collection() store.Kind             { return store.Users }
func (StudentKind) Collection() store.Kind          { return store.Students }
func (ProfessorKind) Collection() store.Kind        { return store.Professors }
func (CourseKind) Collection() store.Kind           { return store.Courses }
func (ExamRegistrationKind) Collection() store.Kind { return store.ExamRegistrations }

// Ref is a reference to a record of kind K. It is never inlined data: it
// serializes exactly like the id it wraps.
type Ref[K Kind] struct {
	ID ObjectID
}

// RefTo builds a reference.
func RefTo[K Kind](id ObjectID) Ref[K] {
	return Ref[K]{ID: id}
}

// Collection returns the collection the reference resolves against.
func (r Ref[K]) Collection() store.Kind {
	var k K
	return k.Collection()
}

func (r Ref[K]) IsZero() bool { return r.ID == "" }

func (r Ref[K]) String() string { return string(r.ID) }

func (r Ref[K]) MarshalJSON() ([]byte, error) {
	return r.ID.MarshalJSON()
}

func (r *Ref[K]) UnmarshalJSON(b []byte) error {
	return r.ID.UnmarshalJSON(b)
}
