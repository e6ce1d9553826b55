package content

import (
	"time"

	"estate-cms/internal/store"

	"github.com/lib/pq"
)

type Review struct {
	store.Model
	Name    string  `json:"name"`
	Work    string  `json:"work"`
	Message string  `gorm:"type:text" json:"message"`
	Image   *string `json:"image"`
}

type Amenity struct {
	store.Model
	Title string  `gorm:"not null" json:"title"`
	Image *string `json:"image"`
}

func (Amenity) TableName() string { return "amenities" }

type HomeHero struct {
	store.Model
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	Description string  `gorm:"type:text" json:"description"`
	ButtonText  string  `json:"button_text"`
	ButtonLink  string  `json:"button_link"`
	Image       *string `json:"image"`
}

func (HomeHero) TableName() string { return "home_heroes" }

// HomeAbout is a singleton: at most one row exists.
type HomeAbout struct {
	store.Model
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	Description string  `gorm:"type:text" json:"description"`
	Image       *string `json:"image"`
}

func (HomeAbout) TableName() string { return "home_abouts" }

type PaymentList struct {
	store.Model
	Images pq.StringArray `gorm:"type:text[]" json:"images"`
}

func (PaymentList) TableName() string { return "payment_lists" }

func (p *PaymentList) ImageList() *pq.StringArray { return &p.Images }

type AssociateDeveloper struct {
	store.Model
	Images pq.StringArray `gorm:"type:text[]" json:"images"`
}

func (AssociateDeveloper) TableName() string { return "associate_developers" }

func (a *AssociateDeveloper) ImageList() *pq.StringArray { return &a.Images }

// Gallery is a document that is nothing but an ordered image list.
type Gallery interface {
	ImageList() *pq.StringArray
}

type Career struct {
	store.Model
	Position        string         `gorm:"not null" json:"position"`
	Department      string         `gorm:"not null" json:"department"`
	JobType         string         `gorm:"not null" json:"job_type"`
	Location        string         `gorm:"not null" json:"location"`
	ExperienceLevel string         `gorm:"not null" json:"experience_level"`
	SalaryRange     string         `json:"salary_range,omitempty"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Requirements    pq.StringArray `gorm:"type:text[]" json:"requirements"`
	EndingDate      *time.Time     `json:"ending_date"`
	IsActive        bool           `gorm:"not null" json:"is_active"`
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&Review{},
		&Amenity{},
		&HomeHero{},
		&HomeAbout{},
		&PaymentList{},
		&AssociateDeveloper{},
		&Career{},
	}
}
