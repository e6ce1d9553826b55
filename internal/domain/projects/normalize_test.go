package projects

import (
	"context"
	"mime/multipart"
	"testing"

	"estate-cms/internal/apperr"
	"estate-cms/internal/domain/media"
	"estate-cms/internal/domain/media/mediatest"
	"estate-cms/internal/infra/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "http://cms.test"

func normalize(t *testing.T, images *fakeImages, fields map[string]any, files map[string][]*multipart.FileHeader) (*Normalized, error) {
	t.Helper()
	n := NewNormalizer(images, logging.Discard())
	return n.Normalize(context.Background(), Input{
		Fields:   fields,
		Files:    files,
		BaseURL:  base,
		Category: "projects",
	})
}

func TestNormalizeDecodesEncodedSections(t *testing.T) {
	images := &fakeImages{}
	out, err := normalize(t, images, map[string]any{
		"hero":               `{"title":"Skyline","hero_images":["http://cms.test/uploads/projects/a.png"]}`,
		"highlights":         `[{"title":"Pool"}]`,
		"amenities":          `not json at all`,
		"location_advantage": `[{"place":"Metro","distance":"2km"}]`,
		"fresh_project":      "true",
	}, nil)
	require.NoError(t, err)

	doc := out.Document
	assert.Equal(t, "Skyline", section(doc, "hero")["title"])
	assert.Equal(t, list("http://cms.test/uploads/projects/a.png"), section(doc, "hero")["hero_images"])
	assert.Equal(t, "Pool", item(doc, "highlights", 0)["title"])
	assert.Equal(t, "not json at all", doc["amenities"])
	assert.Len(t, doc["location_advantage"], 1)
	assert.Equal(t, true, doc["fresh_project"])
	assert.Empty(t, images.puts)
}

func TestNormalizeRejectsMalformedSections(t *testing.T) {
	for name, fields := range map[string]map[string]any{
		"unparseable object": {"hero": `{"title":`},
		"object as list":     {"overview": []any{"x"}},
		"list of scalars":    {"zones": []any{"a", "b"}},
		"layouts not list":   {"layout_and_floorplan": map[string]any{"layouts": "x"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := normalize(t, &fakeImages{}, fields, nil)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestNormalizeStoresInlineImages(t *testing.T) {
	images := &fakeImages{}
	out, err := normalize(t, images, map[string]any{
		"hero": map[string]any{
			"hero_images": []any{mediatest.DataURI(), "", "http://cms.test/uploads/projects/keep.png", 7},
		},
		"about": map[string]any{"left_image": mediatest.DataURI()},
	}, nil)
	require.NoError(t, err)

	hero := section(out.Document, "hero")["hero_images"]
	assert.Equal(t, list("http://cms.test/uploads/projects/1-image.png", "http://cms.test/uploads/projects/keep.png"), hero)
	assert.Equal(t, list("http://cms.test/uploads/projects/2-image.png"), section(out.Document, "about")["left_image"])
	assert.Equal(t, []string{
		"http://cms.test/uploads/projects/1-image.png",
		"http://cms.test/uploads/projects/2-image.png",
	}, out.Created)
}

func TestNormalizeNullStaysNull(t *testing.T) {
	out, err := normalize(t, &fakeImages{}, map[string]any{
		"hero":       map[string]any{"hero_images": nil},
		"overview":   map[string]any{"overview_gallery_images": []any{}},
		"about":      map[string]any{"left_image": []any{"", "  "}},
		"highlights": []any{map[string]any{"image": []any{map[string]any{}}}},
	}, nil)
	require.NoError(t, err)

	doc := out.Document
	for _, v := range []any{
		section(doc, "hero")["hero_images"],
		section(doc, "overview")["overview_gallery_images"],
		section(doc, "about")["left_image"],
		item(doc, "highlights", 0)["image"],
	} {
		assert.Nil(t, v)
	}
	_, present := section(doc, "hero")["hero_images"]
	assert.True(t, present)
}

func TestNormalizeLeavesOmittedLeavesAbsent(t *testing.T) {
	out, err := normalize(t, &fakeImages{}, map[string]any{
		"hero":  map[string]any{"title": "x"},
		"zones": []any{map[string]any{"name": "North"}},
	}, nil)
	require.NoError(t, err)

	_, has := section(out.Document, "hero")["hero_images"]
	assert.False(t, has)
	_, has = item(out.Document, "zones", 0)["image"]
	assert.False(t, has)
	_, has = out.Document["about"]
	assert.False(t, has)
}

func TestNormalizeMergesLogo(t *testing.T) {
	out, err := normalize(t, &fakeImages{}, map[string]any{
		"project_info": `{"name":"Tower","project_logo":["http://cms.test/uploads/projects/nested.png"]}`,
		"project_logo": "http://cms.test/uploads/projects/root.png",
	}, nil)
	require.NoError(t, err)

	doc := out.Document
	_, hasInfo := doc["project_info"]
	_, hasRoot := doc["project_logo"]
	assert.False(t, hasInfo)
	assert.False(t, hasRoot)

	project := section(doc, "project")
	assert.Equal(t, "Tower", project["name"])
	assert.Equal(t, list(
		"http://cms.test/uploads/projects/nested.png",
		"http://cms.test/uploads/projects/root.png",
	), project["project_logo"])
}

func TestNormalizeRootLogoOnly(t *testing.T) {
	out, err := normalize(t, &fakeImages{}, map[string]any{
		"project_logo": mediatest.DataURI(),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, list("http://cms.test/uploads/projects/1-image.png"), section(out.Document, "project")["project_logo"])
	assert.Equal(t, []string{"project"}, out.Partial)
}

func TestNormalizePartialSections(t *testing.T) {
	t.Run("sent sections are not partial", func(t *testing.T) {
		out, err := normalize(t, &fakeImages{}, map[string]any{
			"project_info": `{"name":"Tower"}`,
			"project_logo": mediatest.DataURI(),
		}, map[string][]*multipart.FileHeader{
			"hero.hero_images": {mediatest.FileHeader(t, "hero.hero_images", "a.png", mediatest.PNG())},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"hero"}, out.Partial)
	})

	t.Run("explicit null is not partial", func(t *testing.T) {
		out, err := normalize(t, &fakeImages{}, map[string]any{
			"project":      nil,
			"project_logo": mediatest.DataURI(),
		}, nil)
		require.NoError(t, err)
		assert.Empty(t, out.Partial)
	})

	t.Run("upload tags", func(t *testing.T) {
		out, err := normalize(t, &fakeImages{}, nil, map[string][]*multipart.FileHeader{
			"project_logo":     {mediatest.FileHeader(t, "project_logo", "logo.png", mediatest.PNG())},
			"hero.hero_images": {mediatest.FileHeader(t, "hero.hero_images", "a.png", mediatest.PNG())},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"hero", "project"}, out.Partial)
	})
}

func TestNormalizeUploadsReplaceLeaves(t *testing.T) {
	images := &fakeImages{}
	files := map[string][]*multipart.FileHeader{
		"highlights[1].image": {mediatest.FileHeader(t, "highlights[1].image", "h1.png", mediatest.PNG())},
		"hero.hero_images": {
			mediatest.FileHeader(t, "hero.hero_images", "first.png", mediatest.PNG()),
			mediatest.FileHeader(t, "hero.hero_images", "second.png", mediatest.PNG()),
		},
		"layout_and_floorplan.layouts[0].image": {mediatest.FileHeader(t, "x", "plan.png", mediatest.PNG())},
		"brochure": {mediatest.FileHeader(t, "brochure", "b.png", mediatest.PNG())},
	}
	out, err := normalize(t, images, map[string]any{
		"hero": map[string]any{"hero_images": []any{"http://cms.test/uploads/projects/old.png"}},
		"highlights": []any{
			map[string]any{"image": mediatest.DataURI()},
			map[string]any{"image": []any{"http://cms.test/uploads/projects/stale.png"}},
		},
		"layout_and_floorplan": map[string]any{"layouts": []any{map[string]any{"type": "2BHK"}}},
	}, files)
	require.NoError(t, err)

	doc := out.Document
	heroImages := media.Strings(section(doc, "hero")["hero_images"])
	require.Len(t, heroImages, 2)
	assert.Contains(t, heroImages[0], "first.png")
	assert.Contains(t, heroImages[1], "second.png")

	h1 := media.Strings(item(doc, "highlights", 1)["image"])
	require.Len(t, h1, 1)
	assert.Contains(t, h1[0], "h1.png")

	h0 := media.Strings(item(doc, "highlights", 0)["image"])
	require.Len(t, h0, 1)
	assert.Contains(t, h0[0], "image.png")

	layouts := section(doc, "layout_and_floorplan")["layouts"].([]any)
	assert.Contains(t, media.Strings(layouts[0].(map[string]any)["image"])[0], "plan.png")

	assert.Len(t, images.puts, 5)
}

func TestNormalizeUploadIndexOutOfRange(t *testing.T) {
	images := &fakeImages{}
	_, err := normalize(t, images, map[string]any{
		"zones": []any{map[string]any{"name": "A"}},
	}, map[string][]*multipart.FileHeader{
		"zones[3].image": {mediatest.FileHeader(t, "zones[3].image", "z.png", mediatest.PNG())},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, images.puts)
}

func TestNormalizeRemovesWrittenImagesOnFailure(t *testing.T) {
	images := &fakeImages{}
	_, err := normalize(t, images, map[string]any{
		"hero":  map[string]any{"hero_images": []any{mediatest.DataURI()}},
		"zones": []any{map[string]any{"image": "data:image/png;base64,corrupt"}},
	}, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, []string{"http://cms.test/uploads/projects/1-image.png"}, images.deleted)
}

func TestMatchTag(t *testing.T) {
	s, idx, ok := MatchTag("highlights[12].image")
	require.True(t, ok)
	assert.Equal(t, "highlights", s.Section)
	assert.Equal(t, 12, idx)

	s, _, ok = MatchTag("layout_and_floorplan.layouts[0].image")
	require.True(t, ok)
	assert.Equal(t, "layouts", s.Sub)

	s, _, ok = MatchTag("project_info.project_logo")
	require.True(t, ok)
	assert.Equal(t, "project_logo", s.Field)

	_, _, ok = MatchTag("zones[x].image")
	assert.False(t, ok)
	_, _, ok = MatchTag("image")
	assert.False(t, ok)
}
