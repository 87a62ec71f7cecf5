package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
)

// coreToolNames is the minimal catalog advertised in lazy mode. The
// inspect_tool entry lets a client discover the rest on demand.
var coreToolNames = []string{
	"search_adoptable_pets",
	"get_animal_details",
	"inspect_tool",
}

type handlerFunc func(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error)

// Registry holds the tool catalog and routes tools/call requests to the
// upstream client.
type Registry struct {
	client   *client.Client
	lazy     bool
	tools    []mcp.Tool
	handlers map[string]handlerFunc
}

func NewRegistry(c *client.Client, lazy bool) *Registry {
	r := &Registry{
		client: c,
		lazy:   lazy,
		tools:  allTools(),
	}
	r.handlers = map[string]handlerFunc{
		"list_animals":             r.listAnimals,
		"list_species":             r.listSpecies,
		"list_metadata":            r.listMetadata,
		"list_metadata_types":      r.listMetadataTypes,
		"list_breeds":              r.listBreeds,
		"get_breed":                r.getBreed,
		"get_animal_details":       r.getAnimalDetails,
		"get_contact_info":         r.getContactInfo,
		"compare_animals":          r.compareAnimals,
		"get_organization_details": r.getOrganizationDetails,
		"list_org_animals":         r.listOrgAnimals,
		"search_organizations":     r.searchOrganizations,
		"search_adoptable_pets":    r.searchAdoptablePets,
		"get_random_pet":           r.getRandomPet,
		"list_adopted_animals":     r.listAdoptedAnimals,
		"inspect_tool":             r.inspectTool,
	}
	return r
}

// All returns the full catalog regardless of lazy mode.
func (r *Registry) All() []mcp.Tool {
	return r.tools
}

// List returns the advertised catalog. In lazy mode only the core tools
// are exposed to keep the client's context small.
func (r *Registry) List() []mcp.Tool {
	if !r.lazy {
		return r.tools
	}
	core := make([]mcp.Tool, 0, len(coreToolNames))
	for _, t := range r.tools {
		for _, name := range coreToolNames {
			if t.Name == name {
				core = append(core, t)
				break
			}
		}
	}
	return core
}

// Call dispatches to the named tool. An unknown name is a not-found
// error, never a panic.
func (r *Registry) Call(ctx context.Context, name string, args mcp.M) (mcp.ToolsCallResponse, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return mcp.ToolsCallResponse{}, errors.NotFound("tool " + name)
	}
	return handler(ctx, args)
}

// decodeArgs fills out from args, tolerating wrong shapes. A failed
// decode leaves the caller's defaults in place instead of erroring so
// sloppy model-generated arguments still produce a best-effort call.
func decodeArgs(args mcp.M, out interface{}) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return
	}
	_ = dec.Decode(map[string]interface{}(args))
}

func stringArg(args mcp.M, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func (r *Registry) listAnimals(ctx context.Context, _ mcp.M) (mcp.ToolsCallResponse, error) {
	raw, err := r.client.ListAnimals(ctx)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatAnimalResults(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) listSpecies(ctx context.Context, _ mcp.M) (mcp.ToolsCallResponse, error) {
	raw, err := r.client.ListSpecies(ctx)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatSpeciesResults(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) listMetadata(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	metaArgs := client.MetadataArgs{}
	decodeArgs(args, &metaArgs)
	if metaArgs.MetadataType == "" {
		metaArgs.MetadataType = "colors"
	}
	raw, err := r.client.ListMetadata(ctx, metaArgs)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatMetadataResults(raw, metaArgs.MetadataType)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) listMetadataTypes(_ context.Context, _ mcp.M) (mcp.ToolsCallResponse, error) {
	raw, err := r.client.ListMetadataTypes()
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	var types []string
	for _, t := range gjson.GetBytes(raw, "data").Array() {
		types = append(types, t.String())
	}
	return mcp.TextResult("### Supported Metadata Types\n\n" + strings.Join(types, "\n")), nil
}

func (r *Registry) listBreeds(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	species := stringArg(args, "species")
	if species == "" {
		species = r.client.Defaults().Species
	}
	raw, err := r.client.ListBreeds(ctx, species)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatBreedResults(raw, species)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) getBreed(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	breedID := stringArg(args, "breed_id")
	if breedID == "" {
		breedID = "0"
	}
	raw, err := r.client.GetBreedDetails(ctx, breedID)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	item := client.ExtractSingleItem(gjson.GetBytes(raw, "data"))
	if item == "" {
		return mcp.ToolsCallResponse{}, errors.NotFound("breed " + breedID)
	}
	return mcp.TextResult(FormatBreedDetails(gjson.Parse(item))), nil
}

func (r *Registry) getAnimalDetails(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	animalID := stringArg(args, "animal_id")
	if animalID == "" {
		animalID = "0"
	}
	raw, err := r.client.GetAnimalDetails(ctx, animalID)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	item := client.ExtractSingleItem(gjson.GetBytes(raw, "data"))
	if item == "" {
		return mcp.ToolsCallResponse{}, errors.NotFound("animal " + animalID)
	}
	return mcp.TextResult(FormatSingleAnimal(gjson.Parse(item))), nil
}

func (r *Registry) getContactInfo(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	animalID := stringArg(args, "animal_id")
	if animalID == "" {
		animalID = "0"
	}
	raw, err := r.client.GetContactInfo(ctx, animalID)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatContactInfo(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) compareAnimals(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	compareArgs := struct {
		AnimalIDs []string `mapstructure:"animal_ids"`
	}{}
	decodeArgs(args, &compareArgs)
	raw, err := r.client.CompareAnimals(ctx, compareArgs.AnimalIDs)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatComparisonTable(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) getOrganizationDetails(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	orgID := stringArg(args, "org_id")
	if orgID == "" {
		orgID = "0"
	}
	raw, err := r.client.GetOrganizationDetails(ctx, orgID)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	item := client.ExtractSingleItem(gjson.GetBytes(raw, "data"))
	if item == "" {
		return mcp.ToolsCallResponse{}, errors.NotFound("organization " + orgID)
	}
	return mcp.TextResult(FormatSingleOrg(gjson.Parse(item))), nil
}

func (r *Registry) listOrgAnimals(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	orgID := stringArg(args, "org_id")
	if orgID == "" {
		orgID = "0"
	}
	raw, err := r.client.ListOrgAnimals(ctx, orgID)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatAnimalResults(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) searchOrganizations(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	orgArgs := client.OrgSearchArgs{}
	decodeArgs(args, &orgArgs)
	raw, err := r.client.SearchOrganizations(ctx, orgArgs)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatOrgResults(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) searchAdoptablePets(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	searchArgs := client.SearchArgs{}
	decodeArgs(args, &searchArgs)
	raw, err := r.client.SearchPets(ctx, searchArgs)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatAnimalResults(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) getRandomPet(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	var species *string
	if s := stringArg(args, "species"); s != "" {
		species = &s
	}
	raw, err := r.client.GetRandomPet(ctx, species)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatAnimalResults(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) listAdoptedAnimals(ctx context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	adoptedArgs := client.AdoptedArgs{}
	decodeArgs(args, &adoptedArgs)
	raw, err := r.client.FetchAdoptedPets(ctx, adoptedArgs)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	text, err := FormatAnimalResults(raw)
	if err != nil {
		return mcp.ToolsCallResponse{}, err
	}
	return mcp.TextResult(text), nil
}

func (r *Registry) inspectTool(_ context.Context, args mcp.M) (mcp.ToolsCallResponse, error) {
	toolName := stringArg(args, "tool_name")

	if toolName != "" {
		for _, t := range r.tools {
			if t.Name == toolName {
				pretty, err := json.MarshalIndent(t, "", "  ")
				if err != nil {
					return mcp.ToolsCallResponse{}, errors.Serialization(err)
				}
				return mcp.TextResult(string(pretty)), nil
			}
		}
		return mcp.ToolsCallResponse{}, errors.NotFound("tool " + toolName)
	}

	lines := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		lines = append(lines, "- "+t.Name+": "+t.Description)
	}
	return mcp.TextResult(strings.Join(lines, "\n")), nil
}
