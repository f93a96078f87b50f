// Package roster manages brigade leads and the brigades that group them.
package roster

import (
	"errors"
	"strings"
	"time"
)

// User is a registered brigade lead. BrigadeName is a free-text link to a
// brigade; there is no enforced foreign key.
type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	FullName    string    `bson:"fullName" json:"fullName"`
	RollNumber  string    `bson:"rollNumber" json:"rollNumber"`
	Email       string    `bson:"email" json:"email"`
	BrigadeName string    `bson:"brigadeName" json:"brigadeName"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Brigade is a named grouping of leads.
type Brigade struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ValidateUser checks the required fields before a write.
func ValidateUser(u User) error {
	if strings.TrimSpace(u.FullName) == "" {
		return errors.New("full name required")
	}
	if strings.TrimSpace(u.RollNumber) == "" {
		return errors.New("roll number required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email required")
	}
	if strings.TrimSpace(u.BrigadeName) == "" {
		return errors.New("brigade name required")
	}
	return nil
}

// TrimUser normalizes the text fields.
func TrimUser(u User) User {
	u.FullName = strings.TrimSpace(u.FullName)
	u.RollNumber = strings.TrimSpace(u.RollNumber)
	u.Email = strings.TrimSpace(u.Email)
	u.BrigadeName = strings.TrimSpace(u.BrigadeName)
	return u
}

// BrigadeExists reports whether an active brigade with the given name already
// exists, comparing case-insensitively.
func BrigadeExists(brigades []Brigade, name string) bool {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, b := range brigades {
		if b.IsActive && strings.ToLower(b.Name) == want {
			return true
		}
	}
	return false
}

// BrigadeNames returns the distinct brigade names referenced by users, in
// order of first appearance.
func BrigadeNames(users []User) []string {
	seen := make(map[string]bool)
	var names []string
	for _, u := range users {
		if u.BrigadeName == "" || seen[u.BrigadeName] {
			continue
		}
		seen[u.BrigadeName] = true
		names = append(names, u.BrigadeName)
	}
	return names
}
