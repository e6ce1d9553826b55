package projects

import (
	"encoding/json"
	"time"

	"estate-cms/internal/store"

	"gorm.io/datatypes"
)

// Project stores the whole document in one jsonb column. On the wire the
// sections sit at the top level next to _id and the timestamps.
type Project struct {
	store.Model
	Content datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"-"`
}

func (Project) TableName() string { return "projects" }

func (p Project) Document() Document {
	if p.Content == nil {
		return Document{}
	}
	return Document(p.Content)
}

var reservedKeys = []string{"_id", "createdAt", "updatedAt"}

func (p Project) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Content)+3)
	for k, v := range p.Content {
		out[k] = v
	}
	out["_id"] = p.ID
	out["createdAt"] = p.CreatedAt
	out["updatedAt"] = p.UpdatedAt
	return json.Marshal(out)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var meta struct {
		ID        string    `json:"_id"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	p.ID = meta.ID
	p.CreatedAt = meta.CreatedAt
	p.UpdatedAt = meta.UpdatedAt

	for _, k := range reservedKeys {
		delete(raw, k)
	}
	p.Content = datatypes.JSONMap(raw)
	return nil
}

// ZoneSummary is the projection served by GET /projects-zones.
type ZoneSummary struct {
	ID           string `json:"_id"`
	Zones        any    `json:"zones"`
	FreshProject bool   `json:"fresh_project"`
}

func (p Project) Zones() ZoneSummary {
	doc := p.Document()
	zones := doc["zones"]
	if zones == nil {
		zones = []any{}
	}
	fresh, _ := doc["fresh_project"].(bool)
	return ZoneSummary{ID: p.ID, Zones: zones, FreshProject: fresh}
}
