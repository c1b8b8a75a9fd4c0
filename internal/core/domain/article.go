package domain

import "time"

// Category is one of the fixed editorial sections of the blog.
type Category string

const (
	CategoryPoesia      Category = "poesia"
	CategoryNarrativa   Category = "narrativa"
	CategoryCultura     Category = "cultura"
	CategoryLiteratura  Category = "literatura"
	CategoryTalleres    Category = "talleres"
	CategoryInspiracion Category = "inspiracion"
	CategoryOpinion     Category = "opinion"
)

var validCategories = map[Category]struct{}{
	CategoryPoesia:      {},
	CategoryNarrativa:   {},
	CategoryCultura:     {},
	CategoryLiteratura:  {},
	CategoryTalleres:    {},
	CategoryInspiracion: {},
	CategoryOpinion:     {},
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	_, ok := validCategories[c]
	return ok
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryPoesia,
		CategoryNarrativa,
		CategoryCultura,
		CategoryLiteratura,
		CategoryTalleres,
		CategoryInspiracion,
		CategoryOpinion,
	}
}

// Article is a published post. OwnerID never changes after creation; the
// author name and email are snapshotted at creation time so renames do not
// rewrite history.
type Article struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Category     Category  `json:"category" bson:"category"`
	Content      string    `json:"content" bson:"content"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	OwnerID      string    `json:"owner_id" bson:"owner_id"`
	AuthorName   string    `json:"author_name" bson:"author_name"`
	AuthorEmail  string    `json:"author_email,omitempty" bson:"author_email,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
