package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
)

// MaxCompareAnimals caps the fan-out of a single comparison request.
const MaxCompareAnimals = 5

// SearchArgs are the optional filters for an adoptable-pet search. Nil
// fields fall back to the configured defaults or are omitted entirely.
type SearchArgs struct {
	PostalCode       *string `mapstructure:"postal_code"`
	Miles            *int    `mapstructure:"miles"`
	Species          *string `mapstructure:"species"`
	Breeds           *string `mapstructure:"breeds"`
	Sex              *string `mapstructure:"sex"`
	Age              *string `mapstructure:"age"`
	Size             *string `mapstructure:"size"`
	GoodWithChildren *bool   `mapstructure:"good_with_children"`
	GoodWithDogs     *bool   `mapstructure:"good_with_dogs"`
	GoodWithCats     *bool   `mapstructure:"good_with_cats"`
	HouseTrained     *bool   `mapstructure:"house_trained"`
	SpecialNeeds     *bool   `mapstructure:"special_needs"`
	NeedsFoster      *bool   `mapstructure:"needs_foster"`
	Color            *string `mapstructure:"color"`
	Pattern          *string `mapstructure:"pattern"`
	SortBy           *string `mapstructure:"sort_by"`
}

// AdoptedArgs filter a search over already-adopted animals.
type AdoptedArgs struct {
	PostalCode *string `mapstructure:"postal_code"`
	Miles      *int    `mapstructure:"miles"`
	Species    *string `mapstructure:"species"`
}

// OrgSearchArgs filter an organization search.
type OrgSearchArgs struct {
	PostalCode *string `mapstructure:"postal_code"`
	Miles      *int    `mapstructure:"miles"`
	Query      *string `mapstructure:"query"`
}

// MetadataArgs select a metadata collection, optionally scoped to a species.
type MetadataArgs struct {
	MetadataType string  `mapstructure:"metadata_type"`
	Species      *string `mapstructure:"species"`
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// resolveSpeciesID turns a species name like "dog" or "Dogs" into the
// numeric id the API expects. Numeric input passes through unchanged.
func (c *Client) resolveSpeciesID(ctx context.Context, species string) (string, error) {
	if isNumeric(species) {
		return species, nil
	}

	list, err := c.ListSpecies(ctx)
	if err != nil {
		return "", err
	}

	data := gjson.GetBytes(list, "data")
	if !data.IsArray() {
		return "", errors.Internal("failed to fetch species list for resolution", nil)
	}

	target := strings.ToLower(species)
	var id string
	data.ForEach(func(_, item gjson.Result) bool {
		singular := strings.ToLower(item.Get("attributes.singular").String())
		plural := strings.ToLower(item.Get("attributes.plural").String())
		if singular == target || plural == target {
			id = item.Get("id").String()
			return false
		}
		return true
	})

	if id == "" {
		return "", errors.NotFound("species " + species)
	}
	return id, nil
}

func (c *Client) ListSpecies(ctx context.Context) (json.RawMessage, error) {
	return c.Fetch(ctx, "GET", c.baseURL+"/public/animals/species", nil)
}

func (c *Client) ListBreeds(ctx context.Context, species string) (json.RawMessage, error) {
	id, err := c.resolveSpeciesID(ctx, species)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/public/animals/species/%s/breeds", c.baseURL, id)
	return c.Fetch(ctx, "GET", url, nil)
}

func (c *Client) GetBreedDetails(ctx context.Context, breedID string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/public/animals/breeds/%s", c.baseURL, breedID)
	return c.Fetch(ctx, "GET", url, nil)
}

func (c *Client) ListMetadata(ctx context.Context, args MetadataArgs) (json.RawMessage, error) {
	var url string
	if args.Species != nil {
		id, err := c.resolveSpeciesID(ctx, *args.Species)
		if err != nil {
			return nil, err
		}
		url = fmt.Sprintf("%s/public/animals/species/%s/%s", c.baseURL, id, args.MetadataType)
	} else {
		url = fmt.Sprintf("%s/public/animals/%s", c.baseURL, args.MetadataType)
	}
	return c.Fetch(ctx, "GET", url, nil)
}

// ListMetadataTypes is served locally; the API has no discovery endpoint.
func (c *Client) ListMetadataTypes() (json.RawMessage, error) {
	types := []string{"breeds", "colors", "patterns", "species", "statuses", "qualities"}
	return json.Marshal(map[string]interface{}{"data": types})
}

func (c *Client) ListAnimals(ctx context.Context) (json.RawMessage, error) {
	return c.Fetch(ctx, "GET", c.baseURL+"/public/animals", nil)
}

func (c *Client) GetAnimalDetails(ctx context.Context, animalID string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/public/animals/%s", c.baseURL, animalID)
	return c.Fetch(ctx, "GET", url, nil)
}

func (c *Client) GetContactInfo(ctx context.Context, animalID string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/public/animals/%s?include=orgs", c.baseURL, animalID)
	return c.Fetch(ctx, "GET", url, nil)
}

// CompareAnimals fetches up to MaxCompareAnimals animals concurrently.
// Failed lookups land in the errors list instead of failing the call.
func (c *Client) CompareAnimals(ctx context.Context, animalIDs []string) (json.RawMessage, error) {
	ids := append([]string(nil), animalIDs...)
	sort.Strings(ids)
	ids = dedup(ids)
	if len(ids) > MaxCompareAnimals {
		ids = ids[:MaxCompareAnimals]
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		animals []json.RawMessage
		errs    []string
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			raw, err := c.GetAnimalDetails(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err.Error())
				return
			}
			if item := ExtractSingleItem(gjson.GetBytes(raw, "data")); item != "" {
				animals = append(animals, json.RawMessage(item))
			}
		}(id)
	}
	wg.Wait()

	if animals == nil {
		animals = []json.RawMessage{}
	}
	if errs == nil {
		errs = []string{}
	}
	return json.Marshal(map[string]interface{}{"data": animals, "errors": errs})
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// ExtractSingleItem unwraps the API's habit of returning single records
// as one-element arrays. It returns the raw JSON of the record, or ""
// when there is nothing to unwrap.
func ExtractSingleItem(data gjson.Result) string {
	if data.IsArray() {
		arr := data.Array()
		if len(arr) == 0 {
			return ""
		}
		return arr[0].Raw
	}
	if data.IsObject() {
		return data.Raw
	}
	return ""
}

func (c *Client) SearchOrganizations(ctx context.Context, args OrgSearchArgs) (json.RawMessage, error) {
	miles := c.defaults.Miles
	if args.Miles != nil {
		miles = *args.Miles
	}
	postal := c.defaults.PostalCode
	if args.PostalCode != nil {
		postal = *args.PostalCode
	}

	var filters []map[string]interface{}
	if args.Query != nil {
		filters = addFilter(filters, "orgs.name", "contains", *args.Query)
	}

	body := searchBody(miles, postal, filters)
	return c.Fetch(ctx, "POST", c.baseURL+"/public/orgs/search", body)
}

func (c *Client) GetOrganizationDetails(ctx context.Context, orgID string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/public/orgs/%s", c.baseURL, orgID)
	return c.Fetch(ctx, "GET", url, nil)
}

func (c *Client) ListOrgAnimals(ctx context.Context, orgID string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/public/orgs/%s/animals/search/available", c.baseURL, orgID)
	return c.Fetch(ctx, "GET", url, nil)
}

func searchBody(miles int, postalCode string, filters []map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"filterRadius": map[string]interface{}{
			"miles":      miles,
			"postalcode": postalCode,
		},
	}
	if len(filters) > 0 {
		data["filters"] = filters
	}
	return map[string]interface{}{"data": data}
}

func addFilter(filters []map[string]interface{}, field, operation string, criteria interface{}) []map[string]interface{} {
	return append(filters, map[string]interface{}{
		"fieldName": field,
		"operation": operation,
		"criteria":  criteria,
	})
}

func boolCriteria(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// SearchPets runs the main adoptable-animal search. Omitted location and
// species arguments fall back to the configured defaults so a bare call
// still returns useful results.
func (c *Client) SearchPets(ctx context.Context, args SearchArgs) (json.RawMessage, error) {
	miles := c.defaults.Miles
	if args.Miles != nil {
		miles = *args.Miles
	}
	species := c.defaults.Species
	if args.Species != nil {
		species = *args.Species
	}
	postal := c.defaults.PostalCode
	if args.PostalCode != nil {
		postal = *args.PostalCode
	}

	sortParam := ""
	if args.SortBy != nil {
		switch *args.SortBy {
		case "Newest":
			sortParam = "?sort=-animals.createdDate"
		case "Distance":
			sortParam = "?sort=distance"
		case "Random":
			sortParam = "?sort=random"
		}
	}

	url := fmt.Sprintf("%s/public/animals/search/available/%s/haspic%s", c.baseURL, species, sortParam)

	var filters []map[string]interface{}
	if args.Breeds != nil {
		filters = addFilter(filters, "breeds.name", "contains", *args.Breeds)
	}
	if args.Sex != nil {
		filters = addFilter(filters, "animals.sex", "equal", *args.Sex)
	}
	if args.Age != nil {
		filters = addFilter(filters, "animals.ageGroup", "equal", *args.Age)
	}
	if args.Size != nil {
		filters = addFilter(filters, "animals.sizeGroup", "equal", *args.Size)
	}
	if args.GoodWithChildren != nil {
		filters = addFilter(filters, "animals.isGoodWithChildren", "equal", boolCriteria(*args.GoodWithChildren))
	}
	if args.GoodWithDogs != nil {
		filters = addFilter(filters, "animals.isGoodWithDogs", "equal", boolCriteria(*args.GoodWithDogs))
	}
	if args.GoodWithCats != nil {
		filters = addFilter(filters, "animals.isGoodWithCats", "equal", boolCriteria(*args.GoodWithCats))
	}
	if args.HouseTrained != nil {
		filters = addFilter(filters, "animals.isHouseTrained", "equal", boolCriteria(*args.HouseTrained))
	}
	if args.SpecialNeeds != nil {
		filters = addFilter(filters, "animals.isSpecialNeeds", "equal", boolCriteria(*args.SpecialNeeds))
	}
	if args.NeedsFoster != nil {
		filters = addFilter(filters, "animals.isNeedingFoster", "equal", boolCriteria(*args.NeedsFoster))
	}
	if args.Color != nil {
		filters = addFilter(filters, "animals.colorDetails", "contains", *args.Color)
	}
	if args.Pattern != nil {
		filters = addFilter(filters, "animals.patternDetails", "contains", *args.Pattern)
	}

	body := searchBody(miles, postal, filters)
	return c.Fetch(ctx, "POST", url, body)
}

// GetRandomPet is a single-result search with random ordering.
func (c *Client) GetRandomPet(ctx context.Context, species *string) (json.RawMessage, error) {
	random := "Random"
	return c.SearchPets(ctx, SearchArgs{Species: species, SortBy: &random})
}

// FetchAdoptedPets mirrors SearchPets against the adopted listings.
func (c *Client) FetchAdoptedPets(ctx context.Context, args AdoptedArgs) (json.RawMessage, error) {
	miles := c.defaults.Miles
	if args.Miles != nil {
		miles = *args.Miles
	}
	species := c.defaults.Species
	if args.Species != nil {
		species = *args.Species
	}
	postal := c.defaults.PostalCode
	if args.PostalCode != nil {
		postal = *args.PostalCode
	}

	url := fmt.Sprintf("%s/public/animals/search/adopted/%s/haspic", c.baseURL, species)
	body := searchBody(miles, postal, nil)
	return c.Fetch(ctx, "POST", url, body)
}
