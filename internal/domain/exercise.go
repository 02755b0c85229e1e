package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory classifies an exercise for selection and validation rules.
type ExerciseCategory string

const (
	CategoryCompound  ExerciseCategory = "Compound"
	CategoryIsolation ExerciseCategory = "Isolation"
	CategoryCardio    ExerciseCategory = "Cardio"
	CategoryMobility  ExerciseCategory = "Mobility"
	CategoryStrength  ExerciseCategory = "Strength"
	CategoryPower     ExerciseCategory = "Power"
	CategoryAccessory ExerciseCategory = "Accessory"
)

// Exercise is an immutable catalog entry. BodyPart is the raw
// slash-delimited tag string as imported; Tags is the normalized set,
// populated once at the repository boundary.
type Exercise struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Category          ExerciseCategory   `bson:"category" json:"category"`
	BodyPart          string             `bson:"bodyPart" json:"bodyPart"` // e.g. "Chest/Triceps"
	Equipment         string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Level             string             `bson:"level,omitempty" json:"level,omitempty"`
	Contraindications []string           `bson:"contraindications,omitempty" json:"contraindications,omitempty"`
	Instructions      string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	MediaKey          string             `bson:"mediaKey,omitempty" json:"-"`
	MediaURL          string             `bson:"-" json:"mediaUrl,omitempty"` // presigned, never stored
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`

	Tags []string `bson:"-" json:"-"`
}

// NormalizeTags parses the slash-delimited body-part string into the Tags
// set. Repositories call this once per decoded document so rule code never
// re-splits.
func (e *Exercise) NormalizeTags() {
	e.Tags = SplitBodyParts(e.BodyPart)
}

// SplitBodyParts lower-cases and splits a slash-delimited tag string.
func SplitBodyParts(s string) []string {
	var tags []string
	for _, part := range strings.Split(strings.ToLower(s), "/") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// HasBodyPart reports whether the normalized tag set contains tag.
func (e *Exercise) HasBodyPart(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range e.tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesFocus reports whether any body-part tag appears in the day focus
// label, e.g. body part "Triceps" matches focus "Push/Chest/Triceps".
func (e *Exercise) MatchesFocus(focus string) bool {
	focus = strings.ToLower(focus)
	for _, t := range e.tags() {
		if strings.Contains(focus, t) {
			return true
		}
	}
	return false
}

// IsCardio covers both the Cardio category and HIIT-flavored entries,
// which the catalog sometimes files under other categories.
func (e *Exercise) IsCardio() bool {
	cat := strings.ToLower(string(e.Category))
	title := strings.ToLower(e.Title)
	return strings.Contains(cat, "cardio") || strings.Contains(cat, "hiit") ||
		strings.Contains(title, "cardio") || strings.Contains(title, "hiit")
}

// IsMobility covers the Mobility category plus flexibility/stretch entries.
func (e *Exercise) IsMobility() bool {
	cat := strings.ToLower(string(e.Category))
	title := strings.ToLower(e.Title)
	return strings.Contains(cat, "mobility") || strings.Contains(cat, "flexibility") ||
		strings.Contains(title, "stretch")
}

// IsBodyweight reports whether the exercise needs no equipment.
func (e *Exercise) IsBodyweight() bool {
	eq := strings.ToLower(e.Equipment)
	return strings.Contains(eq, "bodyweight") || strings.Contains(eq, "no equipment")
}

func (e *Exercise) tags() []string {
	if e.Tags == nil {
		return SplitBodyParts(e.BodyPart)
	}
	return e.Tags
}
