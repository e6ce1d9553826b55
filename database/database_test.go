package database

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

func TestModelsHaveTables(t *testing.T) {
	want := map[string]bool{
		"reviews":              true,
		"amenities":            true,
		"home_heroes":          true,
		"home_abouts":          true,
		"payment_lists":        true,
		"associate_developers": true,
		"careers":              true,
		"projects":             true,
	}

	got := map[string]bool{}
	for _, m := range Models() {
		s, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
		if assert.NoError(t, err) {
			got[s.Table] = true
		}
	}
	assert.Equal(t, want, got)
}
