package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/conf"
)

func newTestRegistry(t *testing.T, lazy bool, handler http.HandlerFunc) *Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	settings := &conf.Settings{
		APIKey:            "test_key",
		BaseURL:           srv.URL,
		PostalCode:        "00000",
		Miles:             50,
		Species:           "dogs",
		TimeoutSeconds:    1,
		Lazy:              lazy,
		CacheSize:         10,
		CacheTTLMinutes:   1,
		RateLimitRequests: 100,
		RateLimitWindow:   1,
	}
	return NewRegistry(client.New(settings), lazy)
}

func noUpstream(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL)
	}
}

func TestListFullCatalog(t *testing.T) {
	r := newTestRegistry(t, false, noUpstream(t))
	list := r.List()
	assert.Len(t, list, 16)

	names := make(map[string]bool)
	for _, tool := range list {
		names[tool.Name] = true
	}
	assert.True(t, names["list_animals"])
	assert.True(t, names["get_breed"])
	assert.True(t, names["inspect_tool"])
}

func TestListLazySubset(t *testing.T) {
	r := newTestRegistry(t, true, noUpstream(t))
	list := r.List()
	require.Len(t, list, len(coreToolNames))

	for _, tool := range list {
		assert.Contains(t, coreToolNames, tool.Name)
	}
	assert.Less(t, len(list), len(r.All()))
}

func TestCallUnknownTool(t *testing.T) {
	r := newTestRegistry(t, false, noUpstream(t))
	_, err := r.Call(context.Background(), "unknown_tool", nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestCallListSpecies(t *testing.T) {
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/public/animals/species", req.URL.Path)
		w.Write([]byte(`{"data":[{"id":"1","attributes":{"singular":"Dog","plural":"Dogs"}}]}`))
	})

	res, err := r.Call(context.Background(), "list_species", nil)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	assert.Contains(t, res.Content[0].Text, "Dog")
}

func TestCallGetAnimalDetails(t *testing.T) {
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/public/animals/123", req.URL.Path)
		w.Write([]byte(`{"data":{"id":"123","attributes":{"name":"Buddy","breedString":"Lab"}}}`))
	})

	res, err := r.Call(context.Background(), "get_animal_details", mcp.M{"animal_id": "123"})
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].Text, "# Buddy")
	assert.Contains(t, res.Content[0].Text, "**Breed:** Lab")
}

func TestCallGetAnimalDetailsDefaultsID(t *testing.T) {
	var gotPath string
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Write([]byte(`{"data":{"id":"0","attributes":{}}}`))
	})

	_, err := r.Call(context.Background(), "get_animal_details", mcp.M{})
	require.NoError(t, err)
	assert.Equal(t, "/public/animals/0", gotPath)
}

func TestCallListMetadataDefaultsType(t *testing.T) {
	var gotPath string
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Write([]byte(`{"data":[{"attributes":{"name":"Black"}}]}`))
	})

	res, err := r.Call(context.Background(), "list_metadata", mcp.M{})
	require.NoError(t, err)
	assert.Equal(t, "/public/animals/colors", gotPath)
	assert.Contains(t, res.Content[0].Text, "Black")
}

func TestCallListBreedsDefaultsSpecies(t *testing.T) {
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/public/animals/species":
			w.Write([]byte(`{"data":[{"id":"1","attributes":{"singular":"Dog","plural":"Dogs"}}]}`))
		case "/public/animals/species/1/breeds":
			w.Write([]byte(`{"data":[{"attributes":{"name":"Labrador"}}]}`))
		default:
			t.Errorf("unexpected path %s", req.URL.Path)
		}
	})

	res, err := r.Call(context.Background(), "list_breeds", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].Text, "### Breeds for dogs")
	assert.Contains(t, res.Content[0].Text, "Labrador")
}

func TestCallGetBreedNotFound(t *testing.T) {
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := r.Call(context.Background(), "get_breed", mcp.M{"breed_id": "99999"})
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestCallCompareAnimals(t *testing.T) {
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"data":{"id":"1","attributes":{"name":"Buddy","url":"http://b.com"}}}`))
	})

	res, err := r.Call(context.Background(), "compare_animals", mcp.M{
		"animal_ids": []interface{}{"1", "2"},
	})
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].Text, "| Feature |")
	assert.Contains(t, res.Content[0].Text, "[Buddy](http://b.com)")
}

func TestCallSearchAdoptablePets(t *testing.T) {
	var gotPath string
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Write([]byte(`{"data":[{"attributes":{"name":"Buddy","breedString":"Lab","url":"u"}}]}`))
	})

	res, err := r.Call(context.Background(), "search_adoptable_pets", mcp.M{"species": "cats"})
	require.NoError(t, err)
	assert.Equal(t, "/public/animals/search/available/cats/haspic", gotPath)
	assert.Contains(t, res.Content[0].Text, "Buddy")
}

func TestCallGetRandomPet(t *testing.T) {
	var gotQuery string
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	})

	res, err := r.Call(context.Background(), "get_random_pet", mcp.M{"species": "dogs"})
	require.NoError(t, err)
	assert.Equal(t, "sort=random", gotQuery)
	assert.Equal(t, "No adoptable animals found.", res.Content[0].Text)
}

func TestCallListAdoptedAnimals(t *testing.T) {
	var gotPath string
	r := newTestRegistry(t, false, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Write([]byte(`{"data":[{"attributes":{"name":"Happy"}}]}`))
	})

	res, err := r.Call(context.Background(), "list_adopted_animals", nil)
	require.NoError(t, err)
	assert.Equal(t, "/public/animals/search/adopted/dogs/haspic", gotPath)
	assert.Contains(t, res.Content[0].Text, "Happy")
}

func TestCallListMetadataTypes(t *testing.T) {
	r := newTestRegistry(t, false, noUpstream(t))
	res, err := r.Call(context.Background(), "list_metadata_types", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].Text, "### Supported Metadata Types")
	assert.Contains(t, res.Content[0].Text, "breeds")
}

func TestInspectToolSummary(t *testing.T) {
	r := newTestRegistry(t, true, noUpstream(t))
	res, err := r.Call(context.Background(), "inspect_tool", nil)
	require.NoError(t, err)

	// The summary always covers the full catalog, even in lazy mode.
	assert.Contains(t, res.Content[0].Text, "- list_animals:")
	assert.Contains(t, res.Content[0].Text, "- get_breed:")
}

func TestInspectToolSchema(t *testing.T) {
	r := newTestRegistry(t, false, noUpstream(t))
	res, err := r.Call(context.Background(), "inspect_tool", mcp.M{"tool_name": "list_breeds"})
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].Text, `"name": "list_breeds"`)
	assert.Contains(t, res.Content[0].Text, `"required"`)
}

func TestInspectToolUnknown(t *testing.T) {
	r := newTestRegistry(t, false, noUpstream(t))
	_, err := r.Call(context.Background(), "inspect_tool", mcp.M{"tool_name": "nope"})
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}
